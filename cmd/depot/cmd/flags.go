package cmd

import (
	"github.com/spf13/cobra"
)

var depotFlags struct {
	root struct {
		storePath string
		backend   string
		domain    string
		logLevel  string
		metrics   bool
	}
	repo struct {
		name             string
		description      string
		contributorName  string
		contributorEmail string
		retain           int
	}
	version struct {
		number uint64
		base   uint64
		add    []string
		remove []string
		strict bool
		from   uint64
		to     uint64
	}
	content struct {
		contentType string
		naturalKey  []string
		metadata    []string
		unique      string
		id          string
	}
	purge struct {
		dryRun bool
	}
}

func addConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&depotFlags.root.storePath, "store", "", "Path to the metadata store (default $HOME/.depot/data)")
	flags.StringVar(&depotFlags.root.backend, "backend", "", "Metadata store backend: badger or localfs (default badger)")
	flags.StringVar(&depotFlags.root.domain, "domain", "", "Tenancy domain to operate in (default \"default\")")
	flags.StringVar(&depotFlags.root.logLevel, "loglevel", "info", "Log level (info, debug, none)")
	flags.BoolVar(&depotFlags.root.metrics, "metrics", false, "Enable usage metrics collection")
}

func addRepoNameFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVarP(&depotFlags.repo.name, "repo", "r", "", "The name of the repository")
	return "repo"
}

func addRepoDescriptionFlag(cmd *cobra.Command) string {
	cmd.Flags().StringVar(&depotFlags.repo.description, "description", "", "A description of the repository")
	return "description"
}

func addContributorFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&depotFlags.repo.contributorName, "name", "", "The contributor's name")
	flags.StringVar(&depotFlags.repo.contributorEmail, "email", "", "The contributor's email")
}

func addRetainFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&depotFlags.repo.retain, "retain", 0, "Number of latest versions to retain (0 keeps all)")
}

func addVersionNumberFlag(cmd *cobra.Command) string {
	cmd.Flags().Uint64VarP(&depotFlags.version.number, "version", "v", 0, "The version number")
	return "version"
}

func markRequired(cmd *cobra.Command, flags ...string) {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			logFatalln(err)
		}
	}
}
