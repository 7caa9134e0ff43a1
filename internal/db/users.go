package db

import (
	"context"
	"fmt"

	"github.com/estatedesk/estatedesk/internal/domain"
)

// CreateUser inserts a new team member.
func (db *DB) CreateUser(ctx context.Context, email, passwordHash, name, phone string, role domain.Role) (*User, error) {
	user := &User{}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, name, phone, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, email, password_hash, name, COALESCE(phone, ''), role, created_at`,
		email, passwordHash, name, phone, role,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email address.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, COALESCE(phone, ''), role, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*User, error) {
	user := &User{}
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, password_hash, name, COALESCE(phone, ''), role, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return user, nil
}

// ListUsers returns all team members, newest first.
func (db *DB) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, email, password_hash, name, COALESCE(phone, ''), role, created_at
		 FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUserRole changes a team member's role.
func (db *DB) UpdateUserRole(ctx context.Context, id string, role domain.Role) (*User, error) {
	user := &User{}
	err := db.Pool.QueryRow(ctx,
		`UPDATE users SET role = $2 WHERE id = $1
		 RETURNING id, email, password_hash, name, COALESCE(phone, ''), role, created_at`,
		id, role,
	).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("updating user role: %w", err)
	}
	return user, nil
}

// DeleteUser removes a team member. Their leads become unassigned via FK.
func (db *DB) DeleteUser(ctx context.Context, id string) error {
	tag, err := db.Pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

// CountUsers returns the number of registered users.
func (db *DB) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
