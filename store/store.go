// Package store persists named board layouts in SQLite.
//
// Opening applies embedded migrations (idempotent, recorded in _migrations).
// Cells are stored one row per obstacle; endpoints are nullable columns on the layout row.
package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/gridpath/core"
	"github.com/lixenwraith/gridpath/grid"
)

// ErrLayoutNotFound is returned when no layout has the requested name
var ErrLayoutNotFound = errors.New("layout not found")

//go:embed sql/*.sql
var migrations embed.FS

// Summary describes a stored layout without its cells
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	Obstacles int       `json:"obstacles"`
	CreatedAt time.Time `json:"created_at"`
}

// LayoutStore is a SQLite-backed layout repository, safe for concurrent use
type LayoutStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (and creates if missing) the database at path and applies migrations
func Open(path string, logger zerolog.Logger) (*LayoutStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	s := &LayoutStore{db: db, log: logger.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle
func (s *LayoutStore) Close() error {
	return s.db.Close()
}

// openDB configures busy timeout, WAL journaling and foreign keys
func openDB(dsn string) (*sql.DB, error) {
	// Ensure directory exists for ./data/gridpath.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// foreign_keys is per connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies sql/*.sql in lexical order, skipping recorded files
func (s *LayoutStore) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := s.db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		s.log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Save stores l under name, replacing any layout with the same name
func (s *LayoutStore) Save(ctx context.Context, name string, l grid.Layout) error {
	if name == "" {
		return errors.New("save layout: empty name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	// Cascade removes the previous cells
	if _, err := tx.ExecContext(ctx, `DELETE FROM layouts WHERE name=?`, name); err != nil {
		return fmt.Errorf("save %q: clear previous: %w", name, err)
	}

	id := uuid.NewString()
	sx, sy := nullableCell(l.Start)
	gx, gy := nullableCell(l.Goal)
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO layouts (id, name, size, start_x, start_y, goal_x, goal_y)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, l.Size, sx, sy, gx, gy,
	); err != nil {
		return fmt.Errorf("save %q: insert layout: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO layout_cells (layout_id, x, y) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save %q: prepare cells: %w", name, err)
	}
	defer stmt.Close()
	for _, c := range l.Obstacles {
		if _, err := stmt.ExecContext(ctx, id, c.X, c.Y); err != nil {
			return fmt.Errorf("save %q: insert cell %v: %w", name, c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save %q: commit: %w", name, err)
	}
	s.log.Debug().Str("name", name).Str("id", id).Int("obstacles", len(l.Obstacles)).Msg("layout saved")
	return nil
}

// Load returns the layout stored under name
func (s *LayoutStore) Load(ctx context.Context, name string) (grid.Layout, error) {
	var (
		id     string
		l      grid.Layout
		sx, sy sql.NullInt64
		gx, gy sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, size, start_x, start_y, goal_x, goal_y
        FROM layouts WHERE name=?`, name,
	).Scan(&id, &l.Size, &sx, &sy, &gx, &gy)
	if errors.Is(err, sql.ErrNoRows) {
		return grid.Layout{}, fmt.Errorf("load %q: %w", name, ErrLayoutNotFound)
	}
	if err != nil {
		return grid.Layout{}, fmt.Errorf("load %q: %w", name, err)
	}
	l.Start = cellFrom(sx, sy)
	l.Goal = cellFrom(gx, gy)

	rows, err := s.db.QueryContext(ctx, `
        SELECT x, y FROM layout_cells
        WHERE layout_id=?
        ORDER BY y ASC, x ASC`, id,
	)
	if err != nil {
		return grid.Layout{}, fmt.Errorf("load %q cells: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c core.Cell
		if err := rows.Scan(&c.X, &c.Y); err != nil {
			return grid.Layout{}, fmt.Errorf("load %q cells: %w", name, err)
		}
		l.Obstacles = append(l.Obstacles, c)
	}
	if err := rows.Err(); err != nil {
		return grid.Layout{}, fmt.Errorf("load %q cells: %w", name, err)
	}
	return l, nil
}

// List returns all stored layouts ordered by name
func (s *LayoutStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT l.id, l.name, l.size, l.created_at, COUNT(c.layout_id)
        FROM layouts l
        LEFT JOIN layout_cells c ON c.layout_id = l.id
        GROUP BY l.id
        ORDER BY l.name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Size, &sum.CreatedAt, &sum.Obstacles); err != nil {
			return nil, fmt.Errorf("list layouts: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the layout stored under name
func (s *LayoutStore) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE name=?`, name)
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", name, ErrLayoutNotFound)
	}
	return nil
}

func nullableCell(c *core.Cell) (sql.NullInt64, sql.NullInt64) {
	if c == nil {
		return sql.NullInt64{}, sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(c.X), Valid: true}, sql.NullInt64{Int64: int64(c.Y), Valid: true}
}

func cellFrom(x, y sql.NullInt64) *core.Cell {
	if !x.Valid || !y.Valid {
		return nil
	}
	return &core.Cell{X: int(x.Int64), Y: int(y.Int64)}
}
