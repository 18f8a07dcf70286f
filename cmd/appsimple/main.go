// Command appsimple is the console client and the local database admin tool.
package main

import (
	"os"
)

// Set at build time.
var version = "dev"

func main() {
	cmd := NewRootCmd()
	cmd.Version = version

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
