package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"midatopay/config"
	"midatopay/internal/domain/lifecycle"
	"midatopay/internal/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolMonitorInterval  = 5 * time.Second
	poolWaitWarnDuration = 50 * time.Millisecond
	poolStatsDBName      = "users"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Logger     *slog.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

// New opens the users database. On start it pings, applies pending migrations when
// enabled, exports pool statistics and watches for connection waits.
func New(params Params) (*gorm.DB, error) {
	if params.Config.Postgres == nil {
		return nil, errors.New("postgres config must be provided")
	}

	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Multi-statement writes go through TransactionManager, so per-statement
	// transactions are skipped.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	statsCollector := collectors.NewDBStatsCollector(sqlDB, poolStatsDBName)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if params.Config.Migrations != nil && params.Config.Migrations.AutoMigrate {
				if err := RunMigrations(ctx, sqlDB, params.Logger); err != nil {
					return err
				}
			}

			if params.Registerer != nil {
				if err := params.Registerer.Register(statsCollector); err != nil {
					params.Logger.Warn("Postgres pool stats not exported", slog.Any("error", err))
				}
			}

			go monitorPool(monitorCtx, params.Logger, sqlDB.Stats, poolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()
			if params.Registerer != nil {
				params.Registerer.Unregister(statsCollector)
			}

			return sqlDB.Close()
		},
	})

	return db, nil
}

// monitorPool samples stats every interval and logs connection waits since the last sample.
func monitorPool(ctx context.Context, logger *slog.Logger, stats func() sql.DBStats, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := stats()
			if level, attrs, waited := poolWait(prev, cur); waited {
				logger.LogAttrs(ctx, level, "Postgres pool wait", attrs...)
			}
			prev = cur
		}
	}
}

// poolWait reports whether requests waited for a connection between two samples,
// at warn level once the added wait reaches poolWaitWarnDuration.
func poolWait(prev, cur sql.DBStats) (slog.Level, []slog.Attr, bool) {
	waits := cur.WaitCount - prev.WaitCount
	if waits <= 0 {
		return slog.LevelDebug, nil, false
	}

	waited := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waits", waits),
		slog.Duration("waited", waited),
		slog.Duration("avgWait", waited/time.Duration(waits)),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}

	level := slog.LevelDebug
	if waited >= poolWaitWarnDuration {
		level = slog.LevelWarn
	}

	return level, attrs, true
}
