// Picks the GORM driver by DBDriver. Repository/service code does not change when the DB does.

package config

import (
	"fmt"
	"log"

	"github.com/Luasgl/P2AULA2/models" // models to auto-migrate

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// GORM drivers (we open one depending on cfg.DBDriver).
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
)

// dialector maps cfg.DBDriver to a GORM dialector, checking the DSN it needs.
func dialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("mysql selected but mysql_dsn empty")
		}
		return mysql.Open(cfg.MySQLDSN), nil
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres selected but postgres_dsn empty")
		}
		return postgres.Open(cfg.PostgresDSN), nil
	case "sqlite":
		// SQLite only needs a file path; the file is created if missing.
		return sqlite.Open(cfg.SQLitePath), nil
	case "sqlserver":
		if cfg.SQLServerDSN == "" {
			return nil, fmt.Errorf("sqlserver selected but sqlserver_dsn empty")
		}
		return sqlserver.Open(cfg.SQLServerDSN), nil
	default:
		return nil, fmt.Errorf("unknown DBDriver: %s", cfg.DBDriver)
	}
}

// OpenDB connects with the configured driver and migrates the usuarios table.
// TranslateError turns driver unique-key violations into gorm.ErrDuplicatedKey.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn), // Info is very verbose
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	if err := db.AutoMigrate(&models.Usuario{}); err != nil {
		return nil, fmt.Errorf("automigrate error: %w", err)
	}
	return db, nil
}

// InitDB is OpenDB for boot code: any failure stops the process.
func InitDB(cfg *Config) *gorm.DB {
	db, err := OpenDB(cfg)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	log.Printf("[db] connected: driver=%s", cfg.DBDriver)
	return db
}
