package main

import (
	"github.com/funvibe/gwn/pkg/cli"
)

func main() {
	cli.Run()
}
