package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
	"github.com/contentdepot/depot/pkg/model"
)

var versionList = &cobra.Command{
	Use:   "list",
	Short: "List the versions of a repo",
	Long:  `List the surviving versions of a repository in ascending order`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		err := core.ListVersionsApply(depotFlags.root.domain, depotFlags.repo.name, meta,
			func(version model.VersionDescriptor) error {
				printYAML(version)
				return nil
			}, cliOptions()...)
		if err != nil {
			wrapFatalln("list versions", err)
		}
	},
}

func init() {
	markRequired(versionList, addRepoNameFlag(versionList))
	versionCmd.AddCommand(versionList)
}
