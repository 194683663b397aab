package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/replaykit/mediacommerce/conf"
	"github.com/replaykit/mediacommerce/models"
)

var expireCmd = cobra.Command{
	Use:  "expire",
	Long: "Mark abandoned pending orders as failed. Intended to run periodically from cron.",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, expire)
	},
}

func expire(config *conf.Configuration) {
	db, err := models.Connect(config)
	if err != nil {
		logrus.Fatalf("Error opening database: %+v", err)
	}
	defer db.Close()

	count, err := models.ExpireStaleOrders(db, time.Now())
	if err != nil {
		logrus.Fatalf("Error expiring stale orders: %+v", err)
	}
	logrus.Infof("Marked %d stale pending orders as failed", count)
}
