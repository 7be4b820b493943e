package views

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNameRequired reports a save attempt with a blank view name.
var ErrNameRequired = errors.New("view name is required")

// ErrNameTaken reports a rename collision with an existing view.
var ErrNameTaken = errors.New("view name already in use")

// SavedView is a named filter preset a user can recall across sessions.
type SavedView struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	AnimalTypes []string   `json:"animal_types"`
	Note        string     `json:"note"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Store persists saved views in SQLite.
type Store struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite path required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS saved_views (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  animal_types TEXT NOT NULL DEFAULT '',
  note TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_sv_name ON saved_views(name);`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) List(ctx context.Context, limit int) ([]SavedView, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, animal_types, note, created_at, updated_at
FROM saved_views
ORDER BY name ASC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SavedView, 0, limit)
	for rows.Next() {
		item, err := scanView(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*SavedView, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, animal_types, note, created_at, updated_at
FROM saved_views
WHERE id = ?;
`, id)
	item, err := scanView(row.Scan)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert creates or replaces a view by name and returns its id.
func (s *Store) Upsert(ctx context.Context, name string, animalTypes []string, note string) (int64, error) {
	name = strings.TrimSpace(name)
	note = strings.TrimSpace(note)
	if name == "" {
		return 0, ErrNameRequired
	}

	if _, err := s.db.ExecContext(ctx, `
INSERT INTO saved_views (name, animal_types, note, created_at, updated_at)
VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET
  animal_types = excluded.animal_types,
  note = excluded.note,
  updated_at = CURRENT_TIMESTAMP;
`, name, encodeTypes(animalTypes), note); err != nil {
		return 0, err
	}

	// last_insert_rowid does not advance on the conflict branch, so it can
	// carry the id of an unrelated earlier insert. Resolve by name instead.
	var id int64
	if err := s.db.QueryRowContext(ctx, `SELECT id FROM saved_views WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites an existing view in place. Returns the number of rows
// touched; zero means the id does not exist.
func (s *Store) Update(ctx context.Context, id int64, name string, animalTypes []string, note string) (int64, error) {
	name = strings.TrimSpace(name)
	note = strings.TrimSpace(note)
	if name == "" {
		return 0, ErrNameRequired
	}

	res, err := s.db.ExecContext(ctx, `
UPDATE saved_views
SET name = ?, animal_types = ?, note = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?;
`, name, encodeTypes(animalTypes), note, id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrNameTaken
		}
		return 0, err
	}
	return res.RowsAffected()
}

func (s *Store) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_views WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanView(scan func(dest ...any) error) (SavedView, error) {
	var (
		item      SavedView
		rawTypes  string
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)
	if err := scan(&item.ID, &item.Name, &rawTypes, &item.Note, &createdAt, &updatedAt); err != nil {
		return SavedView{}, err
	}
	item.AnimalTypes = decodeTypes(rawTypes)
	if createdAt.Valid {
		t := createdAt.Time.UTC()
		item.CreatedAt = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time.UTC()
		item.UpdatedAt = &t
	}
	return item, nil
}

func encodeTypes(types []string) string {
	seen := make(map[string]struct{}, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

func decodeTypes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
