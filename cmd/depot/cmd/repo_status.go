package cmd

import (
	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var repoStatus = &cobra.Command{
	Use:   "status",
	Short: "Report the status of a repo",
	Long:  `Report the versions of a repository and the size of the metadata store`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		repo, err := core.GetRepo(depotFlags.root.domain, depotFlags.repo.name, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("get repo", err)
		}
		versions, err := core.ListVersions(depotFlags.root.domain, depotFlags.repo.name, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("list versions", err)
		}

		printYAML(struct {
			Repo      string `yaml:"repo"`
			Domain    string `yaml:"domain"`
			Versions  int    `yaml:"versions"`
			Retain    int    `yaml:"retain"`
			StoreSize string `yaml:"storeSize"`
		}{
			Repo:      repo.Name,
			Domain:    repo.Domain,
			Versions:  len(versions),
			Retain:    repo.RetainVersions,
			StoreSize: units.HumanSize(float64(meta.Size())),
		})
	},
}

func init() {
	markRequired(repoStatus, addRepoNameFlag(repoStatus))
	repoCmd.AddCommand(repoStatus)
}
