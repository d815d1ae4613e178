package main

import "github.com/mschloeman/glitchart/pkg/cli"

func main() {
	cli.RunCLI()
}
