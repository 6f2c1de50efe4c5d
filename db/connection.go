package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"boomerometro-bot/config"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Store holds the connection shared by every handler. It is created once at
// startup and safe for concurrent use.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the configured database and creates the schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(d.driver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	if d.driver == "sqlite" {
		// one connection, so :memory: databases are shared and writes serialize
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(50)
		conn.SetMaxIdleConns(25)
		conn.SetConnMaxLifetime(time.Hour)
		conn.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err = conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}
	log.Printf("[db] connected (%s)", d.driver)

	s := &Store{db: conn, dialect: d}
	if err = s.InitTables(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
