package main

import (
	"github.com/ShakaofCarthage/empire-engine/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
