package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/tair/warehouse-inbound/pkg/logger"
)

// PostgresConfig holds database connection configuration
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// OpenPostgres creates a new PostgreSQL connection pool
func OpenPostgres(cfg PostgresConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Logger.Info().
		Str("host", cfg.Host).
		Str("database", cfg.DBName).
		Msg("Connected to PostgreSQL")

	return db, nil
}

// PostgresStore keeps one collection in a two-column table: the record key
// and the record as a jsonb document. Update merges the named attributes into
// the document with the || operator.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore creates a store for one collection and ensures its table
// exists.
func NewPostgresStore(db *sql.DB, table string) (*PostgresStore, error) {
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (k TEXT PRIMARY KEY, doc JSONB NOT NULL)`,
		table,
	)
	if _, err := db.Exec(stmt); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return &PostgresStore{db: db, table: table}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (Record, error) {
	var doc []byte
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE k = $1`, s.table)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, rec Record) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (k, doc) VALUES ($1, $2)
		 ON CONFLICT (k) DO UPDATE SET doc = EXCLUDED.doc`,
		s.table,
	)
	_, err = s.db.ExecContext(ctx, query, key, doc)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, key string, fields Record) error {
	doc, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2 WHERE k = $1`, s.table)
	res, err := s.db.ExecContext(ctx, query, key, doc)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE k = $1`, s.table)
	_, err := s.db.ExecContext(ctx, query, key)
	return err
}

func (s *PostgresStore) Scan(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s`, s.table)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
