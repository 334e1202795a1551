package main

import (
	"os"

	"github.com/rustyeddy/bondprice/cmd/bondprice/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
