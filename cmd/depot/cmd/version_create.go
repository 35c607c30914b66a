package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var versionCreate = &cobra.Command{
	Use:   "create",
	Short: "Create a new version of a repo",
	Long: `Create the next version of a repository by adding and removing content
units. Removals apply before additions. Pass --remove '*' to clear the
content set first, and --base to fork from an earlier version instead of
the latest.`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		params := core.VersionParams{
			Add:    depotFlags.version.add,
			Remove: depotFlags.version.remove,
		}
		if cmd.Flags().Changed("base") {
			base := depotFlags.version.base
			params.BaseVersion = &base
		}

		opts := cliOptions()
		if depotFlags.version.strict {
			opts = append(opts, core.WithStrictRemove(true))
		}
		descriptor, err := core.CreateVersion(depotFlags.root.domain, depotFlags.repo.name,
			params, meta, opts...)
		if err != nil {
			wrapFatalln("create version", err)
		}
		printYAML(descriptor)
	},
}

func init() {
	markRequired(versionCreate, addRepoNameFlag(versionCreate))

	flags := versionCreate.Flags()
	flags.StringSliceVar(&depotFlags.version.add, "add", nil, "Content unit IDs to add")
	flags.StringSliceVar(&depotFlags.version.remove, "remove", nil, "Content unit IDs to remove, or '*' to clear all")
	flags.Uint64Var(&depotFlags.version.base, "base", 0, "Fork from this version instead of the latest")
	flags.BoolVar(&depotFlags.version.strict, "strict", false, "Fail when removing content that is not present")

	versionCmd.AddCommand(versionCreate)
}
