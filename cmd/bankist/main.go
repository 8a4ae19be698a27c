package main

import "github.com/tylercoen/bankist/internal/cli"

func main() {
	cli.Execute()
}
