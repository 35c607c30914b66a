package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "depot",
	Short: "Depot manages versioned content repositories",
	Long: `Depot manages repositories of immutable content units with copy-on-write
versioning: every change to a repository's content set produces a new,
immutable version, and earlier versions remain fully reconstructable until
they are squashed away.
`,
}

// used to patch over calls to os.Exit() during test
var logFatalln = log.Fatalln
var osExit = os.Exit

func wrapFatalln(msg string, err error) {
	if err != nil {
		logFatalln(fmt.Sprintf("%s: %v", msg, err))
		return
	}
	logFatalln(msg)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)
	addConfigFlags(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("store", defaultStorePath())
	viper.SetDefault("backend", "badger")
	viper.SetDefault("domain", "default")
	if os.Getenv("DEPOT_CONFIG") != "" {
		viper.SetConfigFile(os.Getenv("DEPOT_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.depot")
		viper.AddConfigPath("/etc/depot")
		viper.SetConfigName("depot")
	}

	viper.SetEnvPrefix("depot")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}

	if depotFlags.root.storePath == "" {
		depotFlags.root.storePath = viper.GetString("store")
	}
	if depotFlags.root.backend == "" {
		depotFlags.root.backend = viper.GetString("backend")
	}
	if depotFlags.root.domain == "" {
		depotFlags.root.domain = viper.GetString("domain")
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".depot-data"
	}
	return home + "/.depot/data"
}
