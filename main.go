package main

import (
	"os"

	"github.com/stockseed/stockseed/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
