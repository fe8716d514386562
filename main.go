// Package main is the entry point for the move-spec-test CLI.
package main

import "github.com/eigerco/move-spec-testing-old/cmd"

func main() {
	cmd.Execute()
}
