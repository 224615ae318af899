package connection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type DBConn struct {
	Conn *sql.DB
}

// NewDBConn opens a pool against Postgres and pings it under exponential
// backoff so the service survives the database starting up alongside it.
func NewDBConn(connString string) (*DBConn, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}

	boff := backoff.NewExponentialBackOff()
	boff.MaxElapsedTime = 5 * time.Second

	if err := backoff.Retry(db.Ping, boff); err != nil {
		return nil, fmt.Errorf("could not connect to db: %w", err)
	}

	return &DBConn{Conn: db}, nil
}

// InitSchema creates the tables and indexes if they do not exist yet.
func (c *DBConn) InitSchema(ctx context.Context) error {
	if _, err := c.Conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error initializing schema: %w", err)
	}
	return nil
}

func (c *DBConn) Close() error {
	return c.Conn.Close()
}
