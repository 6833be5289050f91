package main

import "github.com/harry-hov/debughover/cmd"

func main() {
	cmd.Execute()
}
