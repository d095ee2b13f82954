package main

import "github.com/mcoot/courtside/internal/cli"

func main() {
	cli.Execute()
}
