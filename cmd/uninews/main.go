package main

import "uninews/internal/cli"

func main() {
	cli.Execute()
}
