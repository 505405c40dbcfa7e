package main

import "moodnest-cli/cmd"

func main() {
	cmd.Execute()
}
