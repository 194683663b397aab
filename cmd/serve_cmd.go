package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/replaykit/mediacommerce/api"
	"github.com/replaykit/mediacommerce/assetstores"
	"github.com/replaykit/mediacommerce/conf"
	"github.com/replaykit/mediacommerce/models"
	"github.com/replaykit/mediacommerce/payments/stripe"
)

var serveCmd = cobra.Command{
	Use:  "serve",
	Long: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

func serve(config *conf.Configuration) {
	db, err := models.Connect(config)
	if err != nil {
		logrus.Fatalf("Error opening database: %+v", err)
	}
	defer db.Close()

	processor, err := stripe.NewProcessor(stripe.Config{
		SecretKey: config.Payment.Stripe.SecretKey,
	})
	if err != nil {
		logrus.Fatalf("Error configuring payment processor: %+v", err)
	}

	store, err := assetstores.NewStore(config)
	if err != nil {
		logrus.Fatalf("Error initializing asset store: %+v", err)
	}

	a := api.NewAPIWithVersion(config, db, processor, store, Version)

	l := fmt.Sprintf("%v:%v", config.API.Host, config.API.Port)
	logrus.Infof("MediaCommerce API started on: %s", l)
	a.ListenAndServe(l)
}
