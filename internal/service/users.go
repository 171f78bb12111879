// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/auth"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/model"
	"github.com/Go-Digital-Alchemy-Repos/BrushWhacker-sub001/internal/store"
)

// ErrInvalidCredentials is returned for an unknown email or wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserInput provisions a staff account.
type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// UserService manages staff accounts. Roles are set at provisioning only.
type UserService struct {
	Deps
}

func (s *UserService) Get(ctx context.Context, id int64) (store.User, error) {
	u, err := s.Queries.GetUserByID(ctx, id)
	return u, translate(err, "user")
}

func (s *UserService) List(ctx context.Context) ([]store.User, error) {
	return s.Queries.ListUsers(ctx)
}

func (s *UserService) Create(ctx context.Context, in UserInput) (store.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	c := newChecker()
	if c.required("email", email) {
		c.email("email", email)
	}
	c.required("name", in.Name)
	if _, ok := model.ParseRole(in.Role); !ok {
		c.Add("role", "unknown role")
	}
	if len(in.Password) < auth.MinPasswordLength {
		c.Add("password", fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	}
	if _, err := s.Queries.GetUserByEmail(ctx, email); err == nil {
		c.Add("email", "email is already registered")
	}
	if err := c.OrNil(); err != nil {
		return store.User{}, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}
	u, err := s.Queries.CreateUser(ctx, store.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		PasswordHash: hash,
	})
	if err != nil {
		return store.User{}, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Authenticate checks credentials and records the login time.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	u, err := s.Queries.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if isNotFound(err) {
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, u.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("checking password: %w", err)
	}
	if !ok {
		return store.User{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(u.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.Queries.UpdateUserPassword(ctx, u.ID, hash); err != nil {
				s.logger().Warn("password rehash failed", "category", model.EventCategoryAuth, "user_id", u.ID, "error", err)
			}
		}
	}
	if err := s.Queries.UpdateUserLastLogin(ctx, u.ID, time.Now()); err != nil {
		s.logger().Warn("failed to record last login", "category", model.EventCategoryAuth, "user_id", u.ID, "error", err)
	}
	return u, nil
}
