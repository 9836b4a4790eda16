package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/transaction-server/internal/handlers/v1/humaconfig"
	"github.com/carson-networks/transaction-server/internal/handlers/v1/instance"
	loadtesthandlers "github.com/carson-networks/transaction-server/internal/handlers/v1/loadtest"
	"github.com/carson-networks/transaction-server/internal/handlers/v1/status"
	"github.com/carson-networks/transaction-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/transaction-server/internal/loadtest"
	"github.com/carson-networks/transaction-server/internal/logging"
	"github.com/carson-networks/transaction-server/internal/metadata"
	"github.com/carson-networks/transaction-server/internal/metrics"
	"github.com/carson-networks/transaction-server/internal/service"
)

const (
	apiTitle        = "transaction-server"
	apiVersion      = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

type Rest struct {
	Logger     *logrus.Logger
	Port       string
	CorsOrigin string
	Service    *service.Service
	Simulator  *loadtest.Simulator
	Metadata   metadata.InstanceIDFetcher
}

type registerer interface {
	Register(api huma.API)
}

// Handler builds the full router: the huma operations, the health probe and
// the metrics endpoint, wrapped in CORS, metrics and request logging.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()
	api := humago.New(mux, humaconfig.NewConfig(apiTitle, apiVersion))

	handlers := []registerer{
		transaction.NewAddTransactionHandler(r.Service.Transaction),
		transaction.NewListTransactionsHandler(r.Service.Transaction),
		transaction.NewDeleteAllTransactionsHandler(r.Service.Transaction),
		transaction.NewGetTransactionHandler(r.Service.Transaction),
		transaction.NewUpdateTransactionHandler(r.Service.Transaction),
		transaction.NewDeleteTransactionHandler(r.Service.Transaction),
		instance.NewGetInstanceIDHandler(r.Metadata),
		loadtesthandlers.NewStartLoadTestHandler(r.Simulator),
		loadtesthandlers.NewStopLoadTestHandler(r.Simulator),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	statusHandler := status.NewHandler()
	mux.HandleFunc("/health", logging.LoggingWrapper("Health", r.Logger, statusHandler.Handler))
	mux.Handle("GET /metrics", metrics.Handler())

	origin := r.CorsOrigin
	if origin == "" {
		origin = "*"
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{origin},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	}).Handler(mux)

	return logging.Middleware(r.Logger, metrics.Middleware(corsHandler))
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
