package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// DatasetDBStorage implements store.DatasetStorage on PostgreSQL through
// a pgx connection pool.
type DatasetDBStorage struct {
	conn *pgxpool.Pool
}

// NewDatasetDBStorageParams contains the dependencies for a new storage
// client.
type NewDatasetDBStorageParams struct {
	Conn *pgxpool.Pool
}

// NewDatasetDBStorage creates a PostgreSQL-backed dataset storage client.
func NewDatasetDBStorage(params NewDatasetDBStorageParams) *DatasetDBStorage {
	return &DatasetDBStorage{
		conn: params.Conn,
	}
}
