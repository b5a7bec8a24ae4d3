package db

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/store"
	"github.com/taskflow-dev/taskflow/internal/store/gormstore"
	"github.com/taskflow-dev/taskflow/internal/store/mongostore"
)

// OpenStore connects the backend selected by cfg.StoreDriver. The returned
// close function releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, s, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}

		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Warn("mongo disconnect failed")
			}
		}

		return s, closeFn, nil

	case config.DriverPostgres, config.DriverSQLite:
		gdb, err := ConnectDatabase(cfg.StoreDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect %s: %w", cfg.StoreDriver, err)
		}

		if err := MigrateDatabase(gdb); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}

		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}

		return gormstore.New(gdb), closeFn, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
