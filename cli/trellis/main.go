package main

import (
	"os"

	trelliscmder "github.com/papercomputeco/trellis/cmd/trellis"
)

func main() {
	cmd := trelliscmder.NewTrellisCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
