package main

import "github.com/krishjag/tealeaf/internal/cli"

func main() {
	cli.Execute()
}
