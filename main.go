// ABOUTME: Entry point for the cyrlab-admin CLI
// ABOUTME: Terminal dashboard and scripting interface for the CyrLab API

package main

import (
	"fmt"
	"os"

	"github.com/egl-devs/cyrlab-admin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
