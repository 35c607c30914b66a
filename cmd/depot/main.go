package main

import (
	"github.com/contentdepot/depot/cmd/depot/cmd"
)

func main() {
	cmd.Execute()
}
