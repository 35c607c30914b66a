package cmd

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Commands to manage repository versions",
	Long: `Commands to manage the versions of a repository.

Every content mutation produces a new immutable version. Deleting a version
squashes its changes into the next one so that all surviving versions keep
their exact content sets.`,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
