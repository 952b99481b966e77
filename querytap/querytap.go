// Package querytap wraps a database/sql driver so that every executed
// statement is reported to a Handler. It is the query signal consumed by
// the querycounts session: register a tapped driver next to the real one,
// open connections through it from test code, and each Exec/Query emits
// exactly one event.
//
// A handler observes statements, it cannot alter or fail them. Prepared
// statements are reported when executed, not when prepared.
package querytap

import (
	"database/sql"
	"database/sql/driver"
)

// Event describes one executed database statement.
type Event struct {
	Source string // name the tap was registered under
	Query  string // statement text as passed to the driver
}

// Handler receives one call per executed statement. Implementations must be
// safe for concurrent use: database/sql may drive connections from multiple
// goroutines.
type Handler interface {
	HandleQuery(Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(Event)

// HandleQuery calls f(e).
func (f HandlerFunc) HandleQuery(e Event) { f(e) }

// Register registers a tapped copy of d under name, so that
// sql.Open(name, dsn) opens connections whose statements are reported to h.
// A nil handler drops events instead of raising.
func Register(name string, d driver.Driver, h Handler) {
	sql.Register(name, Wrap(name, d, h))
}

// Wrap returns a driver that forwards to d and reports every executed
// statement to h, with events labeled by source.
func Wrap(source string, d driver.Driver, h Handler) driver.Driver {
	return &tapDriver{wrapped: d, source: source, handler: h}
}

type tapDriver struct {
	wrapped driver.Driver
	source  string
	handler Handler
}

func (d *tapDriver) Open(dsn string) (driver.Conn, error) {
	c, err := d.wrapped.Open(dsn)
	if err != nil {
		return nil, err
	}
	return &tapConn{wrapped: c, driver: d}, nil
}

func (d *tapDriver) emit(query string) {
	if d.handler == nil {
		return
	}
	d.handler.HandleQuery(Event{Source: d.source, Query: query})
}
