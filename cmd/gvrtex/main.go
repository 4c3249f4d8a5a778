// Command gvrtex encodes images into GVR textures and decodes them back.
package main

import (
	"os"

	"github.com/woozymasta/gvr/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
