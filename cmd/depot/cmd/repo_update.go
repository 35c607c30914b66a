package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
	"github.com/contentdepot/depot/pkg/model"
)

var repoUpdate = &cobra.Command{
	Use:   "update",
	Short: "Update a repo",
	Long: "Update the description, contributor or retention policy of a repo. " +
		"Lowering the retention count squashes surplus versions immediately.",
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		repo := model.RepoDescriptor{
			Domain:      depotFlags.root.domain,
			Name:        depotFlags.repo.name,
			Description: depotFlags.repo.description,
			Contributor: model.Contributor{
				Name:  depotFlags.repo.contributorName,
				Email: depotFlags.repo.contributorEmail,
			},
			RetainVersions: depotFlags.repo.retain,
		}
		if err := core.UpdateRepo(repo, meta, cliOptions()...); err != nil {
			wrapFatalln("update repo", err)
		}
	},
}

func init() {
	required := []string{
		addRepoNameFlag(repoUpdate),
		addRepoDescriptionFlag(repoUpdate),
	}
	addContributorFlags(repoUpdate)
	addRetainFlag(repoUpdate)
	markRequired(repoUpdate, required...)

	repoCmd.AddCommand(repoUpdate)
}
