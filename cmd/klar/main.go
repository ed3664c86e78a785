// Package main is the entry point for klar, an on-screen display daemon
// for Wayland desktops.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
