package main

import (
	"os"

	"github.com/cardboard-sh/cardboard/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
