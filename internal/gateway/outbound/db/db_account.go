package db

import (
	"context"

	"github.com/shandysiswandi/authgate/internal/gateway/entity"
	"github.com/shandysiswandi/authgate/internal/pkg/goerror"
)

func (s *DB) GetAccountByEmail(ctx context.Context, email string) (_ *entity.Account, err error) {
	ctx, span := s.startSpan(ctx, "GetAccountByEmail")
	defer func() { s.endSpan(span, err) }()

	var acct entity.Account
	err = s.conn.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, COALESCE(phone, ''), created_at
		FROM accounts
		WHERE email = $1`, email,
	).Scan(&acct.ID, &acct.FullName, &acct.Email, &acct.PasswordHash, &acct.Phone, &acct.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &acct, nil
}

func (s *DB) EmailExists(ctx context.Context, email string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "EmailExists")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) CreateAccount(ctx context.Context, in entity.Account) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO accounts (id, full_name, email, password_hash, phone, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)`,
		in.ID, in.FullName, in.Email, in.PasswordHash, in.Phone, in.CreatedAt,
	)
	return s.mapError(err)
}

func (s *DB) UpdatePassword(ctx context.Context, email, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE accounts SET password_hash = $1, updated_at = now()
		WHERE email = $2`, passwordHash, email,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
