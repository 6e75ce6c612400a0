// internal/roster/store.go
package roster

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tlycrimson/bot-website-api/internal/db"
)

// leaderboardSize caps the public leaderboard.
const leaderboardSize = 10

// Store reads and writes roster rows.
type Store struct {
	db *db.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Leaderboard returns the top members ordered by XP.
func (s *Store) Leaderboard(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, username, xp FROM members ORDER BY xp DESC LIMIT ?`, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query failed: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// List returns every row of table ordered by user_id.
func (s *Store) List(ctx context.Context, table Table) ([]map[string]any, error) {
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY user_id`, quoteIdentifier(table.Name))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s failed: %w", table.Name, err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Get returns the row with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, table Table, id string) (map[string]any, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE "id" = ?`, quoteIdentifier(table.Name))
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("select from %s failed: %w", table.Name, err)
	}
	defer rows.Close()

	results, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	return results[0], nil
}

// Create inserts a filtered payload under a fresh row id and returns the
// stored row.
func (s *Store) Create(ctx context.Context, table Table, payload map[string]any) (map[string]any, error) {
	id := uuid.NewString()

	// Sort keys for deterministic output
	keys := sortedKeys(payload)

	quotedCols := make([]string, 0, len(keys)+1)
	placeholders := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)

	quotedCols = append(quotedCols, `"id"`)
	placeholders = append(placeholders, "?")
	args = append(args, id)

	for _, k := range keys {
		quotedCols = append(quotedCols, quoteIdentifier(k))
		placeholders = append(placeholders, "?")
		args = append(args, payload[k])
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdentifier(table.Name),
		strings.Join(quotedCols, ", "),
		strings.Join(placeholders, ", "),
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("insert into %s failed: %w", table.Name, err)
	}

	return s.Get(ctx, table, id)
}

// Update applies a filtered payload to the row with id and returns the
// updated row, or ErrNotFound when the row does not exist.
func (s *Store) Update(ctx context.Context, table Table, id string, payload map[string]any) (map[string]any, error) {
	keys := sortedKeys(payload)

	setClauses := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		setClauses = append(setClauses, fmt.Sprintf("%s = ?", quoteIdentifier(k)))
		args = append(args, payload[k])
	}
	setClauses = append(setClauses, `"updated_at" = datetime('now')`)
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE %s SET %s WHERE "id" = ?`,
		quoteIdentifier(table.Name),
		strings.Join(setClauses, ", "),
	)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s failed: %w", table.Name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return s.Get(ctx, table, id)
}

// Delete removes the row with id. Deleting an absent row is not an error,
// matching the upstream REST semantics the bot was written against.
func (s *Store) Delete(ctx context.Context, table Table, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE "id" = ?`, quoteIdentifier(table.Name))
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete from %s failed: %w", table.Name, err)
	}
	return nil
}

func scanRows(rows *sql.Rows) ([]map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]any)
		for i, col := range columns {
			row[col] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if results == nil {
		results = []map[string]any{}
	}
	return results, nil
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
