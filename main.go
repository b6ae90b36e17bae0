package main

import (
	"os"

	"github.com/thecoblack/edtoken/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
