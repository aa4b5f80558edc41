package configsdatabase

import (
	"fmt"

	"invite.link/configs"
	"invite.link/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// DSN builds the postgres connection string from DB_* variables.
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		configs.GetEnvWithDefault("DB_HOST", "localhost"),
		configs.GetEnvWithDefault("DB_PORT", "5432"),
		configs.GetEnvWithDefault("DB_USER", "postgres"),
		configs.GetEnvWithDefault("DB_PASSWORD", "postgres"),
		configs.GetEnvWithDefault("DB_NAME", "invite"),
		configs.GetEnvWithDefault("DB_SSLMODE", "disable"),
		configs.GetEnvWithDefault("DB_TIMEZONE", "UTC"),
	)
}

// InitDB opens the postgres connection. Failure is fatal: nothing works without the database.
func InitDB() {
	logLevel := logger.Warn
	if configs.GetEnvWithDefault("APP_ENV", "development") == "development" {
		logLevel = logger.Info
	}

	conn, err := gorm.Open(postgres.Open(DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		configslog.Log.Fatal("Cannot connect to database", zap.Error(err))
	}

	sqlDB, err := conn.DB()
	if err != nil {
		configslog.Log.Fatal("Cannot get sql.DB from gorm", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)

	db = conn
	configslog.SLog.Info("Database connection established")
}

// GetDB returns the shared connection. InitDB (or SetDB) must have been called.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB called before InitDB")
	}
	return db
}

// SetDB replaces the shared connection (tests use an in-memory sqlite database).
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB closes the shared connection.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Cannot get sql.DB for close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Database close failed", zap.Error(err))
		return
	}
	configslog.SLog.Info("Database connection closed")
}
