package main

import (
	"os"

	"github.com/bz888/ollamachat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
