package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/replaykit/mediacommerce/conf"
	"github.com/replaykit/mediacommerce/models"
)

// Version is set at build time.
var Version = "dev"

var configFile = ""

var rootCmd = cobra.Command{
	Use:  "mediacommerce",
	Long: "A service that sells time-boxed download access to media collections.",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

// RootCmd will add flags and subcommands to the different commands
func RootCmd() *cobra.Command {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "The configuration file")
	rootCmd.AddCommand(&serveCmd, &migrateCmd, &expireCmd)
	return &rootCmd
}

func execWithConfig(cmd *cobra.Command, fn func(config *conf.Configuration)) {
	config, err := conf.Load(configFile)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %+v", err)
	}

	if config.LogLevel != "" {
		level, err := logrus.ParseLevel(config.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level %q: %+v", config.LogLevel, err)
		}
		logrus.SetLevel(level)
	}

	if config.DB.Namespace != "" {
		models.Namespace = config.DB.Namespace
	}
	fn(config)
}
