// Package main is the entry point for the tagrade CLI.
package main

import "tagrade.dev/pkg/tagrade/cmd"

func main() {
	cmd.Execute()
}
