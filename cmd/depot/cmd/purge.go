package cmd

import (
	"github.com/spf13/cobra"

	"github.com/contentdepot/depot/pkg/core"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge orphan content units",
	Long: `Delete all content units of the domain that no repository version
references anymore, including historical versions. With --dry-run, report
what would be deleted without changing anything.`,
	Run: func(cmd *cobra.Command, args []string) {
		meta, closeStore := openStore()
		defer closeStore()

		opts := cliOptions()
		if depotFlags.purge.dryRun {
			opts = append(opts, core.WithDryRun(true))
		}
		report, err := core.PurgeContent(depotFlags.root.domain, meta, opts...)
		if err != nil {
			wrapFatalln("purge content", err)
		}
		printYAML(report)
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&depotFlags.purge.dryRun, "dry-run", false, "Compute the purge report without deleting anything")
	rootCmd.AddCommand(purgeCmd)
}
