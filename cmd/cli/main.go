package main

import (
	"github.com/fairlens/fairlens/pkg/cli"
)

func main() {
	cli.Execute()
}
