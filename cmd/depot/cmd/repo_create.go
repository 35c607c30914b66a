package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
	"github.com/contentdepot/depot/pkg/model"
)

var repoCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a named repo",
	Long: "Create a repo with an empty initial version. " +
		"Example: depot repo create --repo my-repo --description 'test repo'",
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		repo := model.RepoDescriptor{
			Domain:      depotFlags.root.domain,
			Name:        depotFlags.repo.name,
			Description: depotFlags.repo.description,
			Timestamp:   time.Now(),
			Contributor: model.Contributor{
				Name:  depotFlags.repo.contributorName,
				Email: depotFlags.repo.contributorEmail,
			},
			RetainVersions: depotFlags.repo.retain,
		}
		if err := core.CreateRepo(repo, meta, cliOptions()...); err != nil {
			wrapFatalln("create repo", err)
		}
	},
}

func init() {
	required := []string{
		addRepoNameFlag(repoCreate),
		addRepoDescriptionFlag(repoCreate),
	}
	addContributorFlags(repoCreate)
	addRetainFlag(repoCreate)
	markRequired(repoCreate, required...)

	repoCmd.AddCommand(repoCreate)
}
