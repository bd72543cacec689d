package main

import (
	"os"

	"github.com/scenescope/scenescope/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
