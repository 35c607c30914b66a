package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var versionDelete = &cobra.Command{
	Use:   "delete",
	Short: "Delete a version of a repo",
	Long: `Delete a version by squashing its content changes into the next one.
All surviving versions keep their exact content sets. The last remaining
version of a repository cannot be deleted.`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		err := core.DeleteVersion(depotFlags.root.domain, depotFlags.repo.name,
			depotFlags.version.number, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("delete version", err)
		}
	},
}

func init() {
	markRequired(versionDelete,
		addRepoNameFlag(versionDelete),
		addVersionNumberFlag(versionDelete),
	)
	versionCmd.AddCommand(versionDelete)
}
