package api

import (
	"net/http"
	"regexp"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/replaykit/mediacommerce/assetstores"
	"github.com/replaykit/mediacommerce/conf"
	"github.com/replaykit/mediacommerce/graceful"
	"github.com/replaykit/mediacommerce/payments"
)

const defaultVersion = "unknown version"

var bearerRegexp = regexp.MustCompile(`^(?:B|b)earer (\S+$)`)

// API is the main REST API
type API struct {
	handler   http.Handler
	db        *gorm.DB
	config    *conf.Configuration
	processor payments.Processor
	assets    assetstores.Store
	version   string
}

// NewAPI instantiates a new REST API using the default version.
func NewAPI(config *conf.Configuration, db *gorm.DB, processor payments.Processor, assets assetstores.Store) *API {
	return NewAPIWithVersion(config, db, processor, assets, defaultVersion)
}

// NewAPIWithVersion instantiates a new REST API.
func NewAPIWithVersion(config *conf.Configuration, db *gorm.DB, processor payments.Processor, assets assetstores.Store, version string) *API {
	api := &API{
		config:    config,
		db:        db,
		processor: processor,
		assets:    assets,
		version:   version,
	}

	r := newRouter()
	r.Use(addRequestID)
	r.Use(newStructuredLogger(logrus.StandardLogger()))
	r.Use(api.parseJWTClaims)

	// endpoints
	r.Get("/", api.Index)
	r.Get("/health", api.Index)

	r.Post("/checkout", api.CheckoutCreate)
	r.Get("/download", api.DownloadView)

	r.Get("/collections/{collection_slug}", api.CollectionView)

	r.Post("/webhooks/stripe", api.StripeWebhook)

	r.Route("/orders", func(r *router) {
		r.Use(api.adminRequired)
		r.Get("/", api.OrderList)
		r.Get("/{order_id}", api.OrderView)
	})

	corsHandler := cors.New(cors.Options{
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	api.handler = corsHandler.Handler(r)
	return api
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the REST API and blocks until shutdown.
func (a *API) ListenAndServe(hostAndPort string) {
	log := logrus.WithField("component", "api")

	server := &http.Server{
		Addr:    hostAndPort,
		Handler: a.handler,
	}

	closer := graceful.NewCloser(log)
	closer.Register("api", server, 10*time.Second)
	go closer.DetectShutdown()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("http server listen failed")
	}
}
