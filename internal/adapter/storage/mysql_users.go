package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/dangtrinh58/goshop/internal/core/domain"
)

const mysqlErrDuplicateEntry = 1062

const userColumns = `id, email, password, name, age, address, phone, avatar, role, created_at, updated_at`

func (m *MySQLAdapter) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO users (email, password, name, age, address, phone, avatar, role)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.Password, user.Name, user.Age, user.Address,
		user.Phone, user.Avatar, user.Role,
	)
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrEmailTaken, user.Email)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.User{}, fmt.Errorf("user id: %w", err)
	}
	return m.GetUser(ctx, id)
}

func (m *MySQLAdapter) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var user domain.User
	err := m.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: id %d", domain.ErrUserNotFound, id)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (m *MySQLAdapter) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := m.db.GetContext(ctx, &user,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (m *MySQLAdapter) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := m.db.SelectContext(ctx, &users,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return users, nil
}

func (m *MySQLAdapter) UpdateUser(ctx context.Context, user domain.User) error {
	result, err := m.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, age = ?, address = ?, phone = ?, avatar = ?,
		    password = ?, updated_at = NOW()
		WHERE id = ?`,
		user.Name, user.Age, user.Address, user.Phone, user.Avatar,
		user.Password, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update;
		// check existence to tell them apart.
		if _, err := m.GetUser(ctx, user.ID); err != nil {
			return err
		}
	}
	return nil
}

func (m *MySQLAdapter) DeleteUser(ctx context.Context, id int64) error {
	result, err := m.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrUserNotFound, id)
	}
	return nil
}
