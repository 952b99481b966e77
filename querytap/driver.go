package querytap

import (
	"context"
	"database/sql/driver"
	"errors"
)

// tapConn forwards to the wrapped connection and reports statement
// executions. Exec and Query report only after the wrapped driver accepts
// the statement: when it declines with driver.ErrSkip (go-sql-driver/mysql
// does for parameterized queries unless interpolateParams is on),
// database/sql retries through the prepared-statement path and tapStmt
// reports there instead. Either way one statement is reported exactly once.
type tapConn struct {
	wrapped driver.Conn
	driver  *tapDriver
}

func (c *tapConn) Prepare(query string) (driver.Stmt, error) {
	s, err := c.wrapped.Prepare(query)
	if err != nil {
		return nil, err
	}
	return &tapStmt{wrapped: s, query: query, driver: c.driver}, nil
}

func (c *tapConn) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if p, ok := c.wrapped.(driver.ConnPrepareContext); ok {
		s, err := p.PrepareContext(ctx, query)
		if err != nil {
			return nil, err
		}
		return &tapStmt{wrapped: s, query: query, driver: c.driver}, nil
	}
	return c.Prepare(query)
}

func (c *tapConn) Close() error {
	return c.wrapped.Close()
}

func (c *tapConn) Begin() (driver.Tx, error) {
	return c.wrapped.Begin()
}

func (c *tapConn) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if b, ok := c.wrapped.(driver.ConnBeginTx); ok {
		return b.BeginTx(ctx, opts)
	}
	return c.Begin()
}

func (c *tapConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if e, ok := c.wrapped.(driver.ExecerContext); ok {
		r, err := e.ExecContext(ctx, query, args)
		if err == driver.ErrSkip {
			return nil, driver.ErrSkip
		}
		c.driver.emit(query)
		return r, err
	}
	// legacy interface kept for old drivers
	if e, ok := c.wrapped.(driver.Execer); ok {
		values, err := namedValueToValue(args)
		if err != nil {
			return nil, err
		}
		r, err := e.Exec(query, values)
		if err == driver.ErrSkip {
			return nil, driver.ErrSkip
		}
		c.driver.emit(query)
		return r, err
	}
	return nil, driver.ErrSkip
}

func (c *tapConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if q, ok := c.wrapped.(driver.QueryerContext); ok {
		rows, err := q.QueryContext(ctx, query, args)
		if err == driver.ErrSkip {
			return nil, driver.ErrSkip
		}
		c.driver.emit(query)
		return rows, err
	}
	// legacy interface kept for old drivers
	if q, ok := c.wrapped.(driver.Queryer); ok {
		values, err := namedValueToValue(args)
		if err != nil {
			return nil, err
		}
		rows, err := q.Query(query, values)
		if err == driver.ErrSkip {
			return nil, driver.ErrSkip
		}
		c.driver.emit(query)
		return rows, err
	}
	return nil, driver.ErrSkip
}

func (c *tapConn) Ping(ctx context.Context) error {
	if p, ok := c.wrapped.(driver.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *tapConn) ResetSession(ctx context.Context) error {
	if r, ok := c.wrapped.(driver.SessionResetter); ok {
		return r.ResetSession(ctx)
	}
	return nil
}

func (c *tapConn) IsValid() bool {
	if v, ok := c.wrapped.(driver.Validator); ok {
		return v.IsValid()
	}
	return true
}

// tapStmt reports on execution so that a statement prepared once but run
// many times counts once per run.
type tapStmt struct {
	wrapped driver.Stmt
	query   string
	driver  *tapDriver
}

func (s *tapStmt) Close() error {
	return s.wrapped.Close()
}

func (s *tapStmt) NumInput() int {
	return s.wrapped.NumInput()
}

func (s *tapStmt) Exec(args []driver.Value) (driver.Result, error) {
	s.driver.emit(s.query)
	return s.wrapped.Exec(args)
}

func (s *tapStmt) Query(args []driver.Value) (driver.Rows, error) {
	s.driver.emit(s.query)
	return s.wrapped.Query(args)
}

func (s *tapStmt) ExecContext(ctx context.Context, args []driver.NamedValue) (driver.Result, error) {
	if e, ok := s.wrapped.(driver.StmtExecContext); ok {
		s.driver.emit(s.query)
		return e.ExecContext(ctx, args)
	}
	values, err := namedValueToValue(args)
	if err != nil {
		return nil, err
	}
	return s.Exec(values)
}

func (s *tapStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	if q, ok := s.wrapped.(driver.StmtQueryContext); ok {
		s.driver.emit(s.query)
		return q.QueryContext(ctx, args)
	}
	values, err := namedValueToValue(args)
	if err != nil {
		return nil, err
	}
	return s.Query(values)
}

// namedValueToValue is the standard fallback conversion for drivers that
// predate the context interfaces.
func namedValueToValue(named []driver.NamedValue) ([]driver.Value, error) {
	values := make([]driver.Value, len(named))
	for i, nv := range named {
		if nv.Name != "" {
			return nil, errors.New("querytap: driver does not support named parameters")
		}
		values[i] = nv.Value
	}
	return values, nil
}
