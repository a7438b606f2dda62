package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sashkashishka/balakanyna-sub000/pkg/db"
)

// Admin is a back-office user.
type Admin struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func (a Admin) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

const adminColumns = `id, name, password_hash, created_at`

func (q *Queries) AdminByName(ctx context.Context, name string) (Admin, error) {
	rows, err := q.db.Query(ctx, `SELECT `+adminColumns+` FROM admin WHERE name = $1`, name)
	if err != nil {
		return Admin{}, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Admin])
	return a, mapErr(err)
}

func (q *Queries) AdminByID(ctx context.Context, id int64) (Admin, error) {
	rows, err := q.db.Query(ctx, `SELECT `+adminColumns+` FROM admin WHERE id = $1`, id)
	if err != nil {
		return Admin{}, err
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Admin])
	return a, mapErr(err)
}

func (q *Queries) CreateAdmin(ctx context.Context, name, passwordHash string) (Admin, error) {
	rows, err := q.db.Query(ctx,
		`INSERT INTO admin (name, password_hash) VALUES ($1, $2) RETURNING `+adminColumns,
		name, passwordHash,
	)
	if err != nil {
		return Admin{}, mapErr(err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Admin])
	return a, mapErr(err)
}

// HashPassword returns the bcrypt hash stored for an admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// EnsureAdmin creates the admin account name if it does not exist yet.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, tx db.TxBeginner, name, password string) (bool, error) {
	if name == "" || password == "" {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	created := false
	err = db.WithTx(ctx, tx, func(tx pgx.Tx) error {
		q := New(tx)
		_, err := q.AdminByName(ctx, name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if _, err := q.CreateAdmin(ctx, name, hash); err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
