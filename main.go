package main

import (
	"fmt"
	"os"

	"github.com/montrey/cle/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cle: %v\n", err)
		os.Exit(1)
	}
}
