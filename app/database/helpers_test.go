package database

import (
	"database/sql"

	"github.com/lib/pq"
)

func errNoRows() error {
	return sql.ErrNoRows
}

func errConstraint() error {
	return &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
}
