package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var repoGet = &cobra.Command{
	Use:   "get",
	Short: "Get repo info by name",
	Long:  `Retrieve the description of a repository by its name`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		repo, err := core.GetRepo(depotFlags.root.domain, depotFlags.repo.name, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("get repo", err)
		}
		printYAML(repo)
	},
}

func init() {
	markRequired(repoGet, addRepoNameFlag(repoGet))
	repoCmd.AddCommand(repoGet)
}
