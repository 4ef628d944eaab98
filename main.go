// Package main is the entry point for the spm CLI.
package main

import "github.com/sabaat/LLM-FL-Artifacts/cmd"

func main() {
	cmd.Execute()
}
