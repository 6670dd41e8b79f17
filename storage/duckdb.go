package storage

import (
	_ "embed"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
)

//go:embed schema/runs.sql
var runsSchema []byte

type DuckDB = *sqlx.DB

// InitDuckDB opens an in-memory DuckDB and applies the schema. In-memory is
// deliberate: run history lives exactly as long as the process.
func InitDuckDB() (DuckDB, error) {
	db, err := sqlx.Connect("duckdb", "")
	if err != nil {
		return nil, err
	}

	_ = db.MustExec(string(runsSchema))

	return db, nil
}
