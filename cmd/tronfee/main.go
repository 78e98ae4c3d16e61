// Copyright 2026 dotandev
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/dotandev/tronfee/internal/cmd"
)

var Version = "dev"

func main() {
	// Set version in cmd package (used for the upgrade banner)
	cmd.Version = Version

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
