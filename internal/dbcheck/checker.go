// Package dbcheck verifies the counting tap against a real MySQL server.
package dbcheck

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/go-sql-driver/mysql"

	"qcounts/internal/config"
	"qcounts/querytap"
)

// DriverName is the tapped MySQL driver the checker registers.
const DriverName = "mysql+qcounts"

// Checker opens a tapped connection to the configured database, issues a
// probe query and confirms the tap observed it.
type Checker struct {
	config *config.Config
}

// NewChecker creates a new Checker
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{config: cfg}
}

// drivers can only be registered once per process, so the tap points at a
// relay whose handler is swapped per verification.
var (
	registerOnce sync.Once
	relay        = &relayHandler{}
)

type relayHandler struct {
	mu sync.Mutex
	h  querytap.Handler
}

func (r *relayHandler) HandleQuery(e querytap.Event) {
	r.mu.Lock()
	h := r.h
	r.mu.Unlock()
	if h != nil {
		h.HandleQuery(e)
	}
}

func (r *relayHandler) set(h querytap.Handler) {
	r.mu.Lock()
	r.h = h
	r.mu.Unlock()
}

type eventCounter struct {
	mu    sync.Mutex
	count int
}

func (c *eventCounter) HandleQuery(querytap.Event) {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

func (c *eventCounter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Verify connects through the tapped driver, pings the server and runs one
// probe query. It returns the number of statements the tap observed, which
// must be exactly one for a working setup.
func (c *Checker) Verify(ctx context.Context) (int, error) {
	registerOnce.Do(func() {
		querytap.Register(DriverName, &mysql.MySQLDriver{}, relay)
	})

	counter := &eventCounter{}
	relay.set(counter)
	defer relay.set(nil)

	db, err := sql.Open(DriverName, c.config.GetDSN())
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("ping database server: %w", err)
	}

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return counter.total(), fmt.Errorf("probe query: %w", err)
	}

	observed := counter.total()
	if observed != 1 {
		return observed, fmt.Errorf("tap observed %d statements for one probe query", observed)
	}
	return observed, nil
}
