package main

import "github.com/halverson/overtone/internal/cli"

func main() {
	cli.Execute()
}
