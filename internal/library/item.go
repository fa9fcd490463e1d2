package library

import (
	"context"
	"fmt"
	"time"

	"github.com/vmunix/admit/pkg/quality"
)

const itemColumns = "id, family, title, year, added_at"

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	it := &Item{}
	var family string
	if err := row.Scan(&it.ID, &family, &it.Title, &it.Year, &it.AddedAt); err != nil {
		return nil, err
	}
	it.Family = quality.Family(family)
	return it, nil
}

func addItem(ctx context.Context, q querier, it *Item) error {
	family, err := quality.ParseFamily(string(it.Family))
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	it.Family = family
	now := time.Now()
	result, err := q.ExecContext(ctx, `
		INSERT INTO items (family, title, year, added_at)
		VALUES (?, ?, ?, ?)`,
		string(it.Family), it.Title, it.Year, now,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	it.ID = id
	it.AddedAt = now
	return nil
}

// AddItem inserts a new item. Sets ID and AddedAt on the struct.
// Returns ErrDuplicate if an item with the same family, title and year exists.
func (s *Store) AddItem(ctx context.Context, it *Item) error { return addItem(ctx, s.db, it) }

// AddItem inserts a new item within a transaction.
func (t *Tx) AddItem(ctx context.Context, it *Item) error { return addItem(ctx, t.tx, it) }

func getItem(ctx context.Context, q querier, id int64) (*Item, error) {
	it, err := scanItem(q.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, mapSQLiteError(err))
	}
	return it, nil
}

// GetItem retrieves an item by ID.
// Returns ErrNotFound if the item does not exist.
func (s *Store) GetItem(ctx context.Context, id int64) (*Item, error) { return getItem(ctx, s.db, id) }

// GetItem retrieves an item by ID within a transaction.
func (t *Tx) GetItem(ctx context.Context, id int64) (*Item, error) { return getItem(ctx, t.tx, id) }

func listItems(ctx context.Context, q querier, f ItemFilter) ([]*Item, int, error) {
	var conditions []string
	var args []any

	if f.Family != nil {
		conditions = append(conditions, "family = ?")
		args = append(args, string(*f.Family))
	}
	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.Year != nil {
		conditions = append(conditions, "year = ?")
		args = append(args, *f.Year)
	}
	whereClause := where(conditions)

	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM items "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := "SELECT " + itemColumns + " FROM items " + whereClause + " ORDER BY id" + paginate(f.Limit, f.Offset)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}
	return results, total, nil
}

// ListItems returns items matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListItems(ctx context.Context, f ItemFilter) ([]*Item, int, error) {
	return listItems(ctx, s.db, f)
}

// ListItems returns items matching the filter within a transaction.
func (t *Tx) ListItems(ctx context.Context, f ItemFilter) ([]*Item, int, error) {
	return listItems(ctx, t.tx, f)
}

func deleteItem(ctx context.Context, q querier, id int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete item %d: %w", id, mapSQLiteError(err))
	}
	return nil
}

// DeleteItem removes an item and, by cascade, its files.
// This operation is idempotent.
func (s *Store) DeleteItem(ctx context.Context, id int64) error { return deleteItem(ctx, s.db, id) }

// DeleteItem removes an item within a transaction.
func (t *Tx) DeleteItem(ctx context.Context, id int64) error { return deleteItem(ctx, t.tx, id) }
