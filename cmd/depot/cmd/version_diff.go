package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var versionDiff = &cobra.Command{
	Use:   "diff",
	Short: "Diff two versions of a repo",
	Long:  `Report the content units added and removed between two versions`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		diff, err := core.VersionDiff(depotFlags.root.domain, depotFlags.repo.name,
			depotFlags.version.from, depotFlags.version.to, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("diff versions", err)
		}
		printYAML(diff)
	},
}

func init() {
	markRequired(versionDiff, addRepoNameFlag(versionDiff))

	flags := versionDiff.Flags()
	flags.Uint64Var(&depotFlags.version.from, "from", 0, "The version to diff from")
	flags.Uint64Var(&depotFlags.version.to, "to", 0, "The version to diff to")
	markRequired(versionDiff, "from", "to")

	versionCmd.AddCommand(versionDiff)
}
