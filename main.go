package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/transaction-server/api"
	"github.com/carson-networks/transaction-server/internal/config"
	"github.com/carson-networks/transaction-server/internal/loadtest"
	"github.com/carson-networks/transaction-server/internal/logging"
	"github.com/carson-networks/transaction-server/internal/metadata"
	"github.com/carson-networks/transaction-server/internal/operator"
	"github.com/carson-networks/transaction-server/internal/service"
	"github.com/carson-networks/transaction-server/internal/storage"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:           "transaction-server",
		Short:         "Transaction REST API backed by MySQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on, overrides PORT")

	return cmd
}

func run(parent context.Context, portOverride string) error {
	logger := logging.SetupLogging()
	logger.Info("transaction-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logger.WithError(err).Error("config.ProcessEnvironmentVariables")
		return err
	}
	if portOverride != "" {
		envConfig.Port = portOverride
		if err := envConfig.Validate(); err != nil {
			logger.WithError(err).Error("config.Validate")
			return err
		}
	}
	if err := logging.SetLevel(logger, envConfig.LogLevel); err != nil {
		logger.WithError(err).Warn("logging.SetLevel, keeping info")
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbStorage, err := connect(ctx, logger, envConfig)
	if err != nil {
		logger.WithError(err).Error("storage.Open")
		return err
	}
	defer dbStorage.Close()

	if err := dbStorage.Initialize(ctx); err != nil {
		logger.WithError(err).Error("storage.Initialize")
		return err
	}
	logger.Info("storage.Initialize.complete")

	// One worker keeps writes in arrival order over the single connection.
	delegator := operator.NewOperatorDelegator(dbStorage.Transactions, 1)
	delegator.Start()
	defer delegator.Stop()

	simulator := loadtest.NewSimulator(logger)
	httpRest := api.Rest{
		Logger:     logger,
		Port:       envConfig.Port,
		CorsOrigin: envConfig.CorsOrigin,
		Service:    service.NewService(dbStorage, delegator),
		Simulator:  simulator,
		Metadata:   metadata.NewIMDSFetcher(envConfig.MetadataEndpoint),
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return httpRest.Serve(groupCtx)
	})
	group.Go(func() error {
		return simulator.Run(groupCtx)
	})

	err = group.Wait()
	logger.Info("transaction-server stopped")
	return err
}

// connect opens storage, retrying with exponential backoff until the
// configured number of attempts is used up.
func connect(ctx context.Context, logger *logrus.Logger, envConfig *config.Config) (*storage.Storage, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second

	retries := uint64(envConfig.DBConnectAttempts - 1)
	return backoff.RetryNotifyWithData(
		func() (*storage.Storage, error) {
			return storage.Open(ctx, envConfig)
		},
		backoff.WithContext(backoff.WithMaxRetries(policy, retries), ctx),
		func(err error, wait time.Duration) {
			logger.WithError(err).WithField("retryIn", wait.String()).Warn("storage.Open.retrying")
		},
	)
}
