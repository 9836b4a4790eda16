package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// DBConnectAttempts bounds the startup connection retries.
	DBConnectAttempts int

	Port             string
	CorsOrigin       string
	MetadataEndpoint string
	LogLevel         string
}

func ProcessEnvironmentVariables() (*Config, error) {
	// A missing .env file is fine, real environment variables win either way.
	_ = godotenv.Load()

	// In all cases the default behavior should be for a local MySQL install
	env := Config{
		DBHost:            "localhost",
		DBPort:            "3306",
		DBUser:            "root",
		DBPassword:        "",
		DBName:            "STUDENTS",
		DBConnectAttempts: 5,
		Port:              "4000",
		CorsOrigin:        "*",
		MetadataEndpoint:  "",
		LogLevel:          "info",
	}

	envDBHost := os.Getenv("DB_HOST")
	envDBPort := os.Getenv("DB_PORT")
	envDBUser := os.Getenv("DB_USER")
	envDBPassword := os.Getenv("DB_PASSWORD")
	envDBName := os.Getenv("DB_NAME")
	envDBConnectAttempts := os.Getenv("DB_CONNECT_ATTEMPTS")
	envPort := os.Getenv("PORT")
	envCorsOrigin := os.Getenv("CORS_ORIGIN")
	envMetadataEndpoint := os.Getenv("METADATA_ENDPOINT")
	envLogLevel := os.Getenv("LOG_LEVEL")

	if len(envDBHost) != 0 {
		env.DBHost = envDBHost
	}

	if len(envDBPort) != 0 {
		env.DBPort = envDBPort
	}

	if len(envDBUser) != 0 {
		env.DBUser = envDBUser
	}

	if len(envDBPassword) != 0 {
		env.DBPassword = envDBPassword
	}

	if len(envDBName) != 0 {
		env.DBName = envDBName
	}

	if len(envDBConnectAttempts) != 0 {
		attempts, err := strconv.Atoi(envDBConnectAttempts)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONNECT_ATTEMPTS %q: %w", envDBConnectAttempts, err)
		}
		env.DBConnectAttempts = attempts
	}

	if len(envPort) != 0 {
		env.Port = envPort
	}

	if len(envCorsOrigin) != 0 {
		env.CorsOrigin = envCorsOrigin
	}

	if len(envMetadataEndpoint) != 0 {
		env.MetadataEndpoint = envMetadataEndpoint
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if err := env.Validate(); err != nil {
		return nil, err
	}

	return &env, nil
}

// Validate checks the values that would otherwise only fail once the server
// tries to listen or connect.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port '%s': must be a number", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	if c.DBConnectAttempts < 1 {
		return fmt.Errorf("invalid db connect attempts %d: must be at least 1", c.DBConnectAttempts)
	}

	if c.DBName == "" {
		return fmt.Errorf("db name must not be empty")
	}

	return nil
}

// MySQLDSN returns the driver DSN for the configured database.
func (c *Config) MySQLDSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	dsn.DBName = c.DBName
	dsn.ParseTime = true
	// golang-migrate sends the migration file as a single statement batch.
	dsn.MultiStatements = true

	return dsn.FormatDSN()
}
