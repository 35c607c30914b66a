package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var contentGet = &cobra.Command{
	Use:   "get",
	Short: "Get a content unit by ID",
	Long:  `Retrieve a registered content unit by its opaque ID`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		unit, err := core.GetContent(depotFlags.root.domain, depotFlags.content.id, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("get content", err)
		}
		printYAML(unit)
	},
}

func init() {
	contentGet.Flags().StringVar(&depotFlags.content.id, "id", "", "The content unit ID")
	markRequired(contentGet, "id")
	contentCmd.AddCommand(contentGet)
}
