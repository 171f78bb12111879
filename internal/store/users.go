// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"
)

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	return getByID[User](ctx, q, "users", id)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return getBy[User](ctx, q, "users", "email", email)
}

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := q.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func (q *Queries) CreateUser(ctx context.Context, u User) (User, error) {
	u.CreatedAt, u.UpdatedAt = now(), now()
	return insert[User](ctx, q, "users", `
		INSERT INTO users (email, name, password_hash, role, created_at, updated_at)
		VALUES (:email, :name, :password_hash, :role, :created_at, :updated_at)`, u)
}

func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, now(), id)
	if err != nil {
		return err
	}
	return rowsAffected(res)
}

func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at.UTC(), id)
	return err
}
