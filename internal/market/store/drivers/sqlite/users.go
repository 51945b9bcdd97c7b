package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, email, username, phone, avatar, token, hash, salt, created_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	avatar, err := encodeImage(u.Account.Avatar)
	if err != nil {
		return err
	}

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Account.Username, u.Account.Phone, avatar, u.Token, u.Hash, u.Salt, createdAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if err := checkID(id); err != nil {
		return domain.User{}, err
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByToken(ctx context.Context, token string) (domain.User, error) {
	var (
		u      domain.User
		avatar sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, phone, avatar FROM users WHERE token = ?`, token,
	).Scan(&u.ID, &u.Account.Username, &u.Account.Phone, &avatar)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Account.Avatar, err = decodeImage(avatar)
	return u, err
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg any) (domain.User, error) {
	var (
		u      domain.User
		avatar sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.Account.Username,
		&u.Account.Phone,
		&avatar,
		&u.Token,
		&u.Hash,
		&u.Salt,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.Account.Avatar, err = decodeImage(avatar)
	return u, err
}
