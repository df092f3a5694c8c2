package main

import (
	"os"

	"github.com/scan-io-git/sarifclean/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
