package main

import "linefile/cmd/linefile/cmd"

func main() {
	cmd.Execute()
}
