// Command rpg is the CLI entry point for building and querying a
// Repository Planning Graph.
package main

import (
	"github.com/userFRM/rpg-encoder-sub002/internal/cmd"
)

func main() {
	cmd.Execute()
}
