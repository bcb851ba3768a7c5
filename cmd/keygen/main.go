package main

import (
	"os"

	"github.com/DeBrosOfficial/keygen/pkg/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], cli.Streams{Out: os.Stdout, Err: os.Stderr}))
}
