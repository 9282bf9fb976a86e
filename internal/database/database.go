package database

import (
	"fmt"
	"time"

	"tokenvest/internal/logger"
	"tokenvest/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Models lists every table in dependency order. Drivers without SQL
// migrations are auto-migrated from it.
var Models = []interface{}{
	&models.User{},
	&models.Investment{},
	&models.Token{},
	&models.Distribution{},
	&models.AuditLog{},
}

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager creates a new database manager
func NewManager(config *Config) (*Manager, error) {
	dialector, err := dialectorFor(config)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return &Manager{db: db, config: config}, nil
}

func dialectorFor(config *Config) (gorm.Dialector, error) {
	switch config.Driver {
	case DriverPostgres, "":
		return postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		}), nil
	case DriverMySQL:
		return mysql.Open(config.DSN()), nil
	case DriverSQLite:
		return sqlite.Open(config.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}
}

// RunMigrations applies pending SQL migrations from the migrations/ directory
// on postgres and auto-migrates the models on every other driver.
func (m *Manager) RunMigrations() error {
	logger.Get().Infow("Running database migrations...", "driver", m.config.Driver)

	if m.config.Driver != DriverPostgres && m.config.Driver != "" {
		if err := m.db.AutoMigrate(Models...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		logger.Get().Info("Database migrations completed successfully")
		return nil
	}

	mig, err := migrate.New("file://migrations", m.config.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close releases the connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
