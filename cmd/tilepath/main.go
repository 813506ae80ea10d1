package main

import "github.com/mcoot/tilepath/internal/cli"

func main() {
	cli.Execute()
}
