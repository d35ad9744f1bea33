package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/userFRM/rpg-encoder-sub002/internal/config"
	"github.com/userFRM/rpg-encoder-sub002/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .rpg/ and a default config.yaml in the project root",
	Long: `init creates the .rpg/ directory, writes a default config.yaml, and
appends a .rpg/ entry to .gitignore (unless already ignored). It does not
scan the project - run "rpg scan" afterward to build the graph.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	configPath, err := config.SaveDefault(root)
	if err != nil {
		return fmt.Errorf("rpg init: %w", err)
	}
	fmt.Printf("wrote %s\n", configPath)

	alreadyIgnored, err := storage.EnsureGitignore(root)
	if err != nil {
		return fmt.Errorf("rpg init: %w", err)
	}
	if alreadyIgnored {
		fmt.Println(".rpg/ already in .gitignore")
	} else {
		fmt.Println("added .rpg/ to .gitignore")
	}

	return nil
}
