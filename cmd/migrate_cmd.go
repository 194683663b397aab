package cmd

import (
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/replaykit/mediacommerce/conf"
	"github.com/replaykit/mediacommerce/models"
)

var migrateCmd = cobra.Command{
	Use:  "migrate",
	Long: "Migrate database structures. This will create new tables and add missing columns and indexes.",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, migrate)
	},
}

func migrate(config *conf.Configuration) {
	db, err := gorm.Open(config.DB.Driver, config.DB.ConnURL)
	if err != nil {
		logrus.Fatalf("Error opening database: %+v", err)
	}
	defer db.Close()

	if err := models.AutoMigrate(db.Debug()); err != nil {
		logrus.Fatalf("Error migrating models: %+v", err)
	}
	logrus.Info("Migration finished")
}
