package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var contentDelete = &cobra.Command{
	Use:   "delete",
	Short: "Delete an orphan content unit",
	Long: `Delete a content unit that no repository version references anymore,
including historical versions. Referenced units cannot be deleted.`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		err := core.DeleteContent(depotFlags.root.domain, depotFlags.content.id, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("delete content", err)
		}
	},
}

func init() {
	contentDelete.Flags().StringVar(&depotFlags.content.id, "id", "", "The content unit ID")
	markRequired(contentDelete, "id")
	contentCmd.AddCommand(contentDelete)
}
