// Package main is the entry point for connectctl, a command-line harness
// for provisioning Amazon Connect agents from event files.
//
// Commands: create, profiles, version.
//
// Settings are read from the environment (and an optional .env file) exactly
// as the HTTP server and Lambda handler read them.
package main

import (
	"fmt"
	"os"

	"github.com/janisto/connect-provisioner/cmd/connectctl/commands"
	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	commands.SetVersionInfo(version, commit)
	err := commands.Root().Execute()
	_ = applog.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
