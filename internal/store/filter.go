// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"strings"
)

// Window bounds a list query. Limit 0 means no limit.
type Window struct {
	Limit  int
	Offset int
}

// where accumulates AND-ed conditions. Empty values add nothing.
type where struct {
	clauses []string
	args    []any
}

func (w *where) eq(col string, v string) {
	if v == "" {
		return
	}
	w.clauses = append(w.clauses, col+" = ?")
	w.args = append(w.args, v)
}

func (w *where) eqBool(col string, v *bool) {
	if v == nil {
		return
	}
	w.clauses = append(w.clauses, col+" = ?")
	w.args = append(w.args, *v)
}

// jsonContains matches rows whose JSON array column holds v.
func (w *where) jsonContains(col, v string) {
	if v == "" {
		return
	}
	w.clauses = append(w.clauses, "EXISTS (SELECT 1 FROM json_each("+col+") WHERE json_each.value = ?)")
	w.args = append(w.args, v)
}

// search matches term as a case-insensitive substring of any column.
func (w *where) search(term string, cols ...string) {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return
	}
	like := "%" + escapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + ") LIKE ? ESCAPE '\\'"
		w.args = append(w.args, like)
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) raw(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// selectPage runs a filtered SELECT plus a COUNT over the same conditions.
func selectPage[T any](ctx context.Context, q *Queries, table string, w where, order string, p Window) ([]T, int64, error) {
	var total int64
	if err := q.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM "+table+w.String(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", table, err)
	}

	query := "SELECT * FROM " + table + w.String() + " ORDER BY " + order
	args := append([]any{}, w.args...)
	if p.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, p.Limit, p.Offset)
	}

	items := []T{}
	if err := q.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("listing %s: %w", table, err)
	}
	return items, total, nil
}

func getByID[T any](ctx context.Context, q *Queries, table string, id int64) (T, error) {
	var item T
	err := q.db.GetContext(ctx, &item, "SELECT * FROM "+table+" WHERE id = ?", id)
	return item, err
}

func getBy[T any](ctx context.Context, q *Queries, table, col string, v any) (T, error) {
	var item T
	err := q.db.GetContext(ctx, &item, "SELECT * FROM "+table+" WHERE "+col+" = ?", v)
	return item, err
}

func deleteByID(ctx context.Context, q *Queries, table string, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	return rowsAffected(res)
}

func slugTaken(ctx context.Context, q *Queries, table, slug string, exceptID int64) (bool, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table+" WHERE slug = ? AND id != ?", slug, exceptID)
	return n > 0, err
}

// insert runs a named INSERT and returns the new row.
func insert[T any](ctx context.Context, q *Queries, table, stmt string, arg any) (T, error) {
	var zero T
	res, err := q.db.NamedExecContext(ctx, stmt, arg)
	if err != nil {
		return zero, fmt.Errorf("inserting into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return zero, fmt.Errorf("reading %s id: %w", table, err)
	}
	return getByID[T](ctx, q, table, id)
}

// update runs a named UPDATE keyed by :id and returns the fresh row.
func update[T any](ctx context.Context, q *Queries, table, stmt string, id int64, arg any) (T, error) {
	var zero T
	res, err := q.db.NamedExecContext(ctx, stmt, arg)
	if err != nil {
		return zero, fmt.Errorf("updating %s: %w", table, err)
	}
	if err := rowsAffected(res); err != nil {
		return zero, err
	}
	return getByID[T](ctx, q, table, id)
}
