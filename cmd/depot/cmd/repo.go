package cmd

import (
	"github.com/spf13/cobra"
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Commands to manage repositories",
	Long: `Commands to manage depot repositories.

A repository holds a versioned content set. Repository names must not
contain special characters: Unicode letters, digits and hyphens are allowed.`,
}

func init() {
	rootCmd.AddCommand(repoCmd)
}
