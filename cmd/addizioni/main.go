package main

import "leaddizioni/internal/cli"

func main() {
	cli.Execute()
}
