package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
	"github.com/contentdepot/depot/pkg/model"
)

var repoList = &cobra.Command{
	Use:   "list",
	Short: "List repos",
	Long:  `List the repositories of the current domain`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		err := core.ListReposApply(depotFlags.root.domain, meta, func(repo model.RepoDescriptor) error {
			printYAML(repo)
			return nil
		}, cliOptions()...)
		if err != nil {
			wrapFatalln("list repos", err)
		}
	},
}

func init() {
	repoCmd.AddCommand(repoList)
}
