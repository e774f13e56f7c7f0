package sqldb

import (
	"context"
	"database/sql"
	"errors"

	domuser "example.com/property-listing/app/internal/domain/user"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

type UserRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserRepository(db *sql.DB, d Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: d}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	id, err := r.dialect.insert(ctx, r.db, `
        INSERT INTO users (name, email, password_hash, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	u.ID = id
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, r.dialect.Rebind(
		"SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*domuser.User, error) {
	var u domuser.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domuser.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`
        UPDATE users
        SET name = ?, email = ?, password_hash = ?, updated_at = ?
        WHERE id = ?`),
		u.Name, u.Email, u.PasswordHash, u.UpdatedAt, u.ID,
	)
	if err != nil {
		if isDuplicate(err) {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return nil, domuser.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domuser.ErrUserNotFound
	}
	return nil
}
