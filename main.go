package main

import "tmxmine/internal/cli"

func main() {
	cli.Execute()
}
