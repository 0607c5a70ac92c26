package main

import "github.com/forgedata/mlforge/internal/cli"

func main() {
	cli.Execute()
}
