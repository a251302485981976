// Package database owns the process-wide PostgreSQL handle and the schema
// bootstrap.
package database

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/lib/pq"
)

// DialFunc opens and verifies a database handle for the given DSN.
type DialFunc func(ctx context.Context, dsn string) (*sql.DB, error)

// Pool dials lazily on the first Get and memoizes the handle for the rest
// of the process lifetime. Concurrent callers that arrive before a handle
// exists share a single in-flight dial instead of racing to open their own.
// A failed attempt is cleared so a later Get can retry. The pool is created
// by the startup routine, injected into the repositories, and closed on
// shutdown.
type Pool struct {
	dsn  string
	dial DialFunc

	mu      sync.Mutex
	db      *sql.DB
	pending *attempt
}

// attempt is one in-flight dial shared by every caller waiting on it.
type attempt struct {
	done chan struct{}
	db   *sql.DB
	err  error
}

// New returns a Pool for dsn without dialing.
func New(dsn string) *Pool {
	return &Pool{dsn: dsn, dial: openAndPing}
}

func openAndPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Get returns the cached handle, joining an in-flight dial or starting one
// if none exists. Waiters whose context expires give up individually; the
// dial itself continues for the caller that started it.
func (p *Pool) Get(ctx context.Context) (*sql.DB, error) {
	p.mu.Lock()
	if p.db != nil {
		db := p.db
		p.mu.Unlock()
		return db, nil
	}
	if p.pending != nil {
		a := p.pending
		p.mu.Unlock()
		return a.wait(ctx)
	}
	a := &attempt{done: make(chan struct{})}
	p.pending = a
	p.mu.Unlock()

	a.db, a.err = p.dial(ctx, p.dsn)
	close(a.done)

	p.mu.Lock()
	if p.pending == a {
		p.pending = nil
		if a.err == nil {
			p.db = a.db
		}
	}
	p.mu.Unlock()
	return a.db, a.err
}

func (a *attempt) wait(ctx context.Context) (*sql.DB, error) {
	select {
	case <-a.done:
		return a.db, a.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close releases the cached handle if one was established.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}
