package conn

import (
	"context"
	"database/sql"
	"fmt"

	"schemasync/internal/failure"
)

// Open connects to t and verifies the connection with a ping. Every
// failure is a Connectivity failure.
func Open(ctx context.Context, t Target) (*sql.DB, error) {
	driver, err := t.DriverName()
	if err != nil {
		return nil, failure.NewConnectivity("resolve driver", err)
	}
	dsn, err := t.DataSourceName()
	if err != nil {
		return nil, failure.NewConnectivity(fmt.Sprintf("build connection string for %s", t), err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, failure.NewConnectivity(fmt.Sprintf("open %s", t), err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, failure.NewConnectivity(fmt.Sprintf("connect to %s", t), err)
	}
	return db, nil
}

// Opener opens a connection; Open is the production implementation.
type Opener func(ctx context.Context, t Target) (*sql.DB, error)

// With opens t, runs fn and closes the connection on every path.
func With(ctx context.Context, open Opener, t Target, fn func(db *sql.DB) error) error {
	db, err := open(ctx, t)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}
