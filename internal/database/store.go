// Package database provides the history store for bintree.
//
// Every sequence a tree was built from can be saved and replayed
// later. The store is SQLite in WAL mode behind the Store interface;
// DBService is the primary entry point.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/Mr-Dark-debug/bintree/internal/bst"
	"github.com/Mr-Dark-debug/bintree/pkg/jsonutil"
	"github.com/Mr-Dark-debug/bintree/pkg/timeutil"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned when a sequence ID does not exist.
var ErrNotFound = errors.New("sequence not found")

// Store defines the interface for sequence persistence.
// This abstraction allows for fakes in tests.
type Store interface {
	// InsertSequence persists a sequence and returns its new ID.
	InsertSequence(seq *Sequence) (int64, error)
	// GetSequence returns one sequence or ErrNotFound.
	GetSequence(id int64) (*Sequence, error)
	// QuerySequences returns sequences matching the filter, newest first.
	QuerySequences(filter SequenceFilter) ([]*Sequence, error)
	// SearchLabel returns sequences whose label contains query.
	SearchLabel(query string, limit int) ([]*Sequence, error)
	// DeleteSequence removes a sequence or returns ErrNotFound.
	DeleteSequence(id int64) error
	// GetHistoryStats aggregates over every stored sequence.
	GetHistoryStats() (*HistoryStats, error)

	// Close gracefully shuts down the database connection.
	Close() error
}

// ============================================================
// Domain Models
// ============================================================

// Sequence is an input sequence in insertion order together with
// the shape of the tree it produced.
type Sequence struct {
	SequenceID int64  `json:"sequence_id"`
	Label      string `json:"label,omitempty"`
	Values     []int  `json:"values"`
	Size       int    `json:"size"`
	Height     int    `json:"height"`
	CreatedAt  int64  `json:"created_at"` // Unix nanoseconds
}

// SequenceFilter defines query parameters for sequence listing.
type SequenceFilter struct {
	Label     *string `json:"label,omitempty"`
	MinHeight *int    `json:"min_height,omitempty"`
	Since     *int64  `json:"since,omitempty"` // Unix nanoseconds
	Until     *int64  `json:"until,omitempty"` // Unix nanoseconds
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// HistoryStats holds aggregates across the whole history.
type HistoryStats struct {
	Sequences   int     `json:"sequences"`
	TotalValues int     `json:"total_values"`
	MaxHeight   int     `json:"max_height"`
	AvgHeight   float64 `json:"avg_height"`
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite.
// Access is serialised through a read-write mutex.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertSequence *sql.Stmt
	stmtGetSequence    *sql.Stmt
	stmtDeleteSequence *sql.Stmt
}

// NewDBService opens the database at path, applies the schema and
// prepares the hot statements. Use ":memory:" in tests.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// SQLite only supports one writer at a time; a single connection
	// also keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtInsertSequence, err = s.db.Prepare(`
		INSERT INTO sequences (label, vals, size, height, created_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertSequence: %w", err)
	}

	s.stmtGetSequence, err = s.db.Prepare(`
		SELECT sequence_id, label, vals, size, height, created_at
		FROM sequences
		WHERE sequence_id = ?
	`)
	if err != nil {
		return fmt.Errorf("preparing GetSequence: %w", err)
	}

	s.stmtDeleteSequence, err = s.db.Prepare(`
		DELETE FROM sequences WHERE sequence_id = ?
	`)
	if err != nil {
		return fmt.Errorf("preparing DeleteSequence: %w", err)
	}

	return nil
}

// InsertSequence persists seq. Size and Height are recomputed from
// the values, CreatedAt defaults to now, and SequenceID is set to
// the assigned ID.
func (s *DBService) InsertSequence(seq *Sequence) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals, err := jsonutil.MarshalValues(seq.Values)
	if err != nil {
		return 0, fmt.Errorf("encoding sequence values: %w", err)
	}

	seq.Size = len(seq.Values)
	seq.Height = bst.FromSlice(seq.Values).Height()
	if seq.CreatedAt == 0 {
		seq.CreatedAt = timeutil.NowNano()
	}

	result, err := s.stmtInsertSequence.Exec(seq.Label, vals, seq.Size, seq.Height, seq.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting sequence: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading sequence id: %w", err)
	}
	seq.SequenceID = id
	return id, nil
}

// GetSequence returns the sequence with the given ID.
func (s *DBService) GetSequence(id int64) (*Sequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq, err := scanSequence(s.stmtGetSequence.QueryRow(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sequence %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying sequence %d: %w", id, err)
	}
	return seq, nil
}

// QuerySequences returns sequences matching the filter criteria,
// most recent first. Without a limit at most 100 rows are returned.
func (s *DBService) QuerySequences(filter SequenceFilter) ([]*Sequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT sequence_id, label, vals, size, height, created_at FROM sequences WHERE 1=1`
	args := make([]interface{}, 0)

	if filter.Label != nil {
		query += ` AND label = ?`
		args = append(args, *filter.Label)
	}
	if filter.MinHeight != nil {
		query += ` AND height >= ?`
		args = append(args, *filter.MinHeight)
	}
	if filter.Since != nil {
		query += ` AND created_at >= ?`
		args = append(args, *filter.Since)
	}
	if filter.Until != nil {
		query += ` AND created_at <= ?`
		args = append(args, *filter.Until)
	}

	query += ` ORDER BY created_at DESC, sequence_id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	} else {
		query += ` LIMIT 100`
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sequences: %w", err)
	}
	defer rows.Close()

	return scanSequences(rows)
}

// SearchLabel returns sequences whose label contains query, newest
// first.
func (s *DBService) SearchLabel(query string, limit int) ([]*Sequence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT sequence_id, label, vals, size, height, created_at
		FROM sequences
		WHERE instr(label, ?) > 0
		ORDER BY created_at DESC, sequence_id DESC
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching labels for %q: %w", query, err)
	}
	defer rows.Close()

	return scanSequences(rows)
}

// DeleteSequence removes the sequence with the given ID.
func (s *DBService) DeleteSequence(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.stmtDeleteSequence.Exec(id)
	if err != nil {
		return fmt.Errorf("deleting sequence %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting sequence %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("sequence %d: %w", id, ErrNotFound)
	}
	return nil
}

// GetHistoryStats returns aggregates over all stored sequences.
func (s *DBService) GetHistoryStats() (*HistoryStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &HistoryStats{}
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(size), 0),
			COALESCE(MAX(height), 0),
			COALESCE(AVG(height), 0)
		FROM sequences
	`).Scan(&stats.Sequences, &stats.TotalValues, &stats.MaxHeight, &stats.AvgHeight)
	if err != nil {
		return nil, fmt.Errorf("querying history stats: %w", err)
	}
	return stats, nil
}

// Close closes the prepared statements and the connection pool.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts := []*sql.Stmt{
		s.stmtInsertSequence, s.stmtGetSequence, s.stmtDeleteSequence,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.db.Close()
}

// ============================================================
// Scan Helpers
// ============================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSequence(row rowScanner) (*Sequence, error) {
	seq := &Sequence{}
	var vals string
	if err := row.Scan(
		&seq.SequenceID, &seq.Label, &vals,
		&seq.Size, &seq.Height, &seq.CreatedAt,
	); err != nil {
		return nil, err
	}

	values, err := jsonutil.UnmarshalValues(vals)
	if err != nil {
		return nil, fmt.Errorf("decoding values of sequence %d: %w", seq.SequenceID, err)
	}
	seq.Values = values
	return seq, nil
}

func scanSequences(rows *sql.Rows) ([]*Sequence, error) {
	var seqs []*Sequence
	for rows.Next() {
		seq, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sequence row: %w", err)
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}
