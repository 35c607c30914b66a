package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var versionGet = &cobra.Command{
	Use:   "get",
	Short: "Get a version of a repo",
	Long:  `Retrieve a version descriptor together with its visible content units`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		descriptor, err := core.GetVersion(depotFlags.root.domain, depotFlags.repo.name,
			depotFlags.version.number, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("get version", err)
		}
		printYAML(descriptor)

		units, err := core.VersionContentUnits(depotFlags.root.domain, depotFlags.repo.name,
			depotFlags.version.number, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("get version content", err)
		}
		printYAML(units)
	},
}

func init() {
	markRequired(versionGet,
		addRepoNameFlag(versionGet),
		addVersionNumberFlag(versionGet),
	)
	versionCmd.AddCommand(versionGet)
}
