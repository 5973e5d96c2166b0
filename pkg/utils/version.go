// Package utils provides bespoke, one off utils that don't make sense to be
// their own package
package utils

// Build metadata, injected through -ldflags at release time.
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
