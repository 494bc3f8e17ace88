package main

import "github.com/DSM-PICK/pick-cli/cmd"

func main() {
	cmd.Execute()
}
