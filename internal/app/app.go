package app

import (
	"database/sql"
	"fmt"
	"os"

	"go-payroll/internal/shared/config"
	"go-payroll/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func (i *infrastructure) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

// connectInfrastructure opens Postgres and, when REDIS_ADDR is set, Redis.
func connectInfrastructure(cfg config.Config, logger *zap.Logger) (*infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	infra := &infrastructure{gormDB: gormDB, sqlDB: sqlDB}

	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, snapshot locks and idempotency keys are disabled")
		return infra, nil
	}
	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.rdb = rdb
	logger.Info("redis connection established")

	return infra, nil
}

// BuildApp connects the infrastructure and registers every HTTP module on router.
// The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")

	infra, err := connectInfrastructure(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, infra, cfg); err != nil {
		infra.Close()
		return nil, err
	}

	return infra.Close, nil
}

func lockOwner() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return fmt.Sprintf("%s:%d", host, os.Getpid())
}
