// Command railtix serves the train-ticket query and seed API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/railtix/railtix/internal/config"
	"github.com/railtix/railtix/internal/logger"
	"github.com/railtix/railtix/internal/metrics"
	"github.com/railtix/railtix/internal/server"
	"github.com/railtix/railtix/internal/service"
	"github.com/railtix/railtix/internal/store"
	"github.com/railtix/railtix/internal/store/badgerstore"
	"github.com/railtix/railtix/internal/store/dynamostore"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open store", zap.Error(err))
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	handler := server.NewHandler(
		service.NewQueryService(st, log),
		service.NewLoader(st, log),
		server.DemoSeedSource(cfg.Seed.Days, cfg.Seed.SlotsPerDay),
		m,
		log,
	)

	srv := server.New(cfg.Server.Port, handler, m, reg, log)
	if err := srv.Run(ctx); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config, log *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendBadger:
		log.Info("using badger store", zap.String("path", cfg.Store.BadgerPath))
		return badgerstore.Open(badgerstore.Options{Path: cfg.Store.BadgerPath})

	case config.BackendDynamo:
		var optFns []func(*awsconfig.LoadOptions) error
		if cfg.Store.Region != "" {
			optFns = append(optFns, awsconfig.WithRegion(cfg.Store.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		// Sanity check the resolved credentials before serving traffic.
		if ident, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}); err != nil {
			log.Warn("could not resolve aws caller identity", zap.Error(err))
		} else {
			log.Info("aws identity",
				zap.String("account", aws.ToString(ident.Account)),
				zap.String("arn", aws.ToString(ident.Arn)),
			)
		}

		table := dynamostore.DefaultTable()
		table.Name = cfg.Store.Table
		log.Info("using dynamodb store",
			zap.String("table", table.Name),
			zap.String("region", awsCfg.Region),
		)
		return dynamostore.New(dynamodb.NewFromConfig(awsCfg), table), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
