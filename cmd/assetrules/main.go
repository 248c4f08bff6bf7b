package main

import (
	"os"

	"github.com/assetpipe/assetrules/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
