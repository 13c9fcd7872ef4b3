package main

import "textprep/internal/cli"

func main() {
	cli.Execute()
}
