package main

import "github.com/Bearbbcjtc/gen3-tools/cmd/gen3-audit/cmd"

func main() {
	cmd.Execute()
}
