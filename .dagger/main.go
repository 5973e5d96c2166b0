// Trellis CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/trellis/internal/dagger"
)

// Trellis is the main module for the Trellis CI/CD pipeline
type Trellis struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Trellis CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Trellis {
	return &Trellis{
		Source: source,
	}
}

// goContainer returns a Debian Bookworm-based Go container with the Go
// caches and the project source mounted. Trellis is pure Go, so CGO stays
// off and no system packages are needed.
//
// It is the shared foundation for tests, builds, and linting.
func (t *Trellis) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", t.Source)
}

// Test runs the trellis unit tests via "go test"
func (t *Trellis) Test(ctx context.Context) (string, error) {
	return t.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
