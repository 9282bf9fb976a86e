package database

import (
	"fmt"
	"net"

	"tokenvest/internal/config"

	"github.com/go-sql-driver/mysql"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// DSN returns the driver-specific connection string. For sqlite DBName is the
// file path (or a file: URI).
func (c *Config) DSN() string {
	switch c.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, c.Port)
		mc.DBName = c.DBName
		mc.ParseTime = true
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	case DriverSQLite:
		return c.DBName
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
}

// MigrateURL returns the golang-migrate database URL for postgres.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User, c.Password, net.JoinHostPort(c.Host, c.Port), c.DBName, c.SSLMode)
}
