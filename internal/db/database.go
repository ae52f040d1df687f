package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minhasantafonte/santafonte-backend/config"
	"github.com/minhasantafonte/santafonte-backend/internal/metrics"
	"github.com/minhasantafonte/santafonte-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize connects to the store's Postgres database and keeps the handle
// for GetDB.
func Initialize(cfg *config.DatabaseConfig) error {
	logger.Info("Connecting to store database", map[string]interface{}{
		"host":     cfg.Host,
		"port":     cfg.Port,
		"database": cfg.DBName,
		"user":     cfg.User,
		"sslmode":  cfg.SSLMode,
	})

	gdb, err := open(postgres.Open(cfg.DSN()), cfg)
	if err != nil {
		return err
	}
	DB = gdb
	return nil
}

// open connects through dialector, applies the pool limits and checks the
// connection.
func open(dialector gorm.Dialector, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: newQueryLogger(cfg.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	logger.Info("Database connection established", map[string]interface{}{
		"max_idle_conns":    cfg.MaxIdleConns,
		"max_open_conns":    cfg.MaxOpenConns,
		"conn_max_lifetime": cfg.ConnMaxLifetime.String(),
		"slow_query":        cfg.SlowQuery.String(),
	})
	return gdb, nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// queryLogger sends gorm's output to the application logger and times every
// statement in the db operation histogram.
type queryLogger struct {
	slow  time.Duration
	level gormlogger.LogLevel
}

func newQueryLogger(slow time.Duration) *queryLogger {
	return &queryLogger{slow: slow, level: gormlogger.Warn}
}

func (l *queryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *queryLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *queryLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.Error("Database error", fmt.Errorf(msg, args...))
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	sql, rows := fc()
	metrics.TrackDBOperation(statementKind(sql))(begin)

	elapsed := time.Since(begin)
	fields := map[string]interface{}{
		"sql":         sql,
		"rows":        rows,
		"duration_ms": elapsed.Milliseconds(),
	}
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		logger.Error("Query failed", err, fields)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		logger.Warn("Slow query", fields)
	case l.level >= gormlogger.Info:
		logger.Debug("Query", fields)
	}
}

// statementKind is the lower-cased leading SQL verb, used as the metric label.
func statementKind(sql string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	switch verb = strings.ToLower(verb); verb {
	case "select", "insert", "update", "delete":
		return verb
	}
	return "other"
}
