// Package main is the entry point for the codepub CLI.
package main

import "codepub.dev/pkg/codepub/cmd"

func main() {
	cmd.Execute()
}
