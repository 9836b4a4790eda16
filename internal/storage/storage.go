package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/carson-networks/transaction-server/internal/config"
	"github.com/carson-networks/transaction-server/internal/storage/sqlconfig"
)

type Storage struct {
	DB           *sql.DB
	Transactions sqlconfig.ITransactionTable

	dsn string
}

// Open connects to MySQL and verifies the connection. The pool is capped at a
// single connection so statements run one at a time, as they would on one
// dedicated client connection.
func Open(ctx context.Context, env *config.Config) (*Storage, error) {
	dsn := env.MySQLDSN()

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	return &Storage{
		DB:           db,
		Transactions: sqlconfig.NewTransactionsTable(db),
		dsn:          dsn,
	}, nil
}

// Initialize makes sure the transactions table exists. Safe to call on every start.
func (s *Storage) Initialize(ctx context.Context) error {
	_, _, err := RunMigrations(ctx, s.dsn)
	return err
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
