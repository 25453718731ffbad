package db

import (
	"context"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
)

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, role, created_at
		FROM users
		WHERE email = $1
	`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, role, created_at
		FROM users
		WHERE username = $1
	`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, role, created_at
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err = s.conn.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, role, password_hash
		FROM users
		WHERE email = $1
	`

	var user entity.UserLoginInfo
	err = s.conn.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.PasswordHash)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserList(ctx context.Context) (_ []entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, username, email, role, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		if err = rows.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return users, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO users (id, username, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = s.conn.Exec(ctx, query, user.ID, user.Username, user.Email, user.Role, passwordHash)
	return s.mapError(err)
}

func (s *DB) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPassword")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE users
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
	`

	_, err = s.conn.Exec(ctx, query, userID, passwordHash)
	return s.mapError(err)
}

func (s *DB) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	query := `DELETE FROM users WHERE id = $1`

	_, err = s.conn.Exec(ctx, query, id)
	return s.mapError(err)
}
