package main

import (
	"github.com/solhaven/astrocade/internal/cli"
)

func main() {
	cli.Execute()
}
