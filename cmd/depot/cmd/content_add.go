package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
	"github.com/contentdepot/depot/pkg/model"
)

var contentAdd = &cobra.Command{
	Use:   "add",
	Short: "Register a content unit",
	Long: `Register a content unit by natural key, or retrieve the unit already
registered under that key. Example:
depot content add --type file --key sha256=deadbeef --key path=a.txt --unique a.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		unit := model.ContentUnit{
			Domain:        depotFlags.root.domain,
			Type:          depotFlags.content.contentType,
			NaturalKey:    parsePairs(depotFlags.content.naturalKey),
			UniquenessKey: depotFlags.content.unique,
			Metadata:      parsePairs(depotFlags.content.metadata),
		}
		registered, err := core.GetOrCreateContent(unit, meta, cliOptions()...)
		if err != nil {
			wrapFatalln("register content", err)
		}
		printYAML(registered)
	},
}

func init() {
	flags := contentAdd.Flags()
	flags.StringVar(&depotFlags.content.contentType, "type", "", "The content type of the unit")
	flags.StringSliceVar(&depotFlags.content.naturalKey, "key", nil, "Natural key attribute as key=value (repeatable)")
	flags.StringSliceVar(&depotFlags.content.metadata, "meta", nil, "Metadata attribute as key=value (repeatable)")
	flags.StringVar(&depotFlags.content.unique, "unique", "", "Uniqueness key the unit competes on within a version")
	markRequired(contentAdd, "type", "key")

	contentCmd.AddCommand(contentAdd)
}
