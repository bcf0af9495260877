package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"gaia/config"
	"gaia/internal/domain/lifecycle"
	"gaia/internal/domain/repository"
	"gaia/internal/errors"
	"gaia/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the PostgreSQL client. The users table is migrated once the connection answers a ping.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Every write in this store is a single statement; GORM's implicit transaction adds nothing.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if err := Migrate(db.WithContext(ctx)); err != nil {
				return err
			}

			go monitorDBPool(monitorCtx, params.Logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// createLowerEmailIndex enforces case-insensitive uniqueness even for rows written without normalization.
const createLowerEmailIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`

// Migrate creates or updates the users table and its unique email indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.UserModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate users table")
	}
	if err := db.Exec(createLowerEmailIndex).Error; err != nil {
		return errors.Wrap(err, "failed to create lower(email) index")
	}

	return nil
}

type healthChecker struct {
	db *gorm.DB
}

// NewHealthChecker reports storage reachability for the health endpoints.
func NewHealthChecker(db *gorm.DB) repository.HealthChecker {
	return &healthChecker{db: db}
}

func (h *healthChecker) Ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping PostgreSQL")
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
