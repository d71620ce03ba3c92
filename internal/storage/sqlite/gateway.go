package sqlite

import (
	"database/sql"
)

// gateway implements storage.Gateway over a single *sql.Conn participating
// in the enclosing transaction. It carries no state of its own beyond the
// connection, with queries split across per-entity files.
type gateway struct {
	conn *sql.Conn
}
