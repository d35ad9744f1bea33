// Package cmd implements the rpg CLI: a thin cobra front-end over the
// core graph/extraction/navigation packages. Each operation the core
// exposes gets one subcommand in its own file; commands register onto
// rootCmd from their init functions and keep no business logic of their
// own.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the current version of the rpg CLI.
var Version = "0.1.0"

var (
	// projectRoot is shared by every subcommand; it defaults to the
	// current working directory and is resolved once in each RunE.
	projectRoot string
)

// rootCmd is the base command when rpg is invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:     "rpg",
	Short:   "Repository Planning Graph: build and query a codebase's entity/dependency graph",
	Version: Version,
	Long: `rpg extracts functions, classes, methods, and their call/import/inheritance
dependencies from a source tree, groups them into a functional-area
hierarchy, and persists the result under .rpg/ as a queryable graph.

Commands:
  rpg init     create .rpg/ and a default config.yaml
  rpg scan     parse a source tree and (re)build the graph
  rpg search   intent-based entity search
  rpg fetch    materialize one entity or hierarchy node
  rpg explore  bounded dependency traversal from a seed entity
  rpg lift     open a semantic-lifting session over a hierarchy scope`,
}

// Execute runs the root command. Called once from cmd/rpg/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", "", "project root (default: current directory)")
}

func resolveRoot() (string, error) {
	if projectRoot != "" {
		return projectRoot, nil
	}
	return os.Getwd()
}
