// Package main is the entry point for the conancheck CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The conancheck tool checks conanfile
// requirements for available updates and can rewrite them in place.
package main

import "github.com/ajxudir/conancheck/cmd"

// main initializes and runs the conancheck CLI application.
func main() {
	cmd.Execute()
}
