package main

import (
	"github.com/mchmarny/linkscore/pkg/cli"
)

func main() {
	cli.Execute()
}
