package main

import "yamdb/cmd/cli/command"

func main() {
	command.Execute()
}
