package main

import "addon-indexer/internal/cli"

func main() {
	cli.Execute()
}
