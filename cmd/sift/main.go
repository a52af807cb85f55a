// sift filters YAML datasets with declarative filter trees.
package main

import (
	"os"

	"github.com/AnatoleLucet/sift/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
