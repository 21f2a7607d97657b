// cmd/pcrsim/main.go
package main

import (
	"os"

	"pcrsim/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
