package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/crimsondominion/crimson-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

const userColumns = `id, username, email, password_hash, created_at`

// UserRepository is the credential store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user. The unique indexes are the authoritative
// duplicate guard; their violations surface as ErrDuplicateEmail or ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err = q.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, timeValue(user.CreatedAt),
	)
	if err != nil {
		return classifyUserWrite(err)
	}
	return nil
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// EmailTaken reports whether another user than exceptID already uses email.
func (r *UserRepository) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM users WHERE email = ? AND id <> ?`, email, exceptID)
}

// UsernameTaken reports whether another user than exceptID already uses username.
func (r *UserRepository) UsernameTaken(ctx context.Context, username, exceptID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM users WHERE username = ? AND id <> ?`, username, exceptID)
}

// List returns every user ordered by signup time.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return users, nil
}

// Update overwrites username, email and password hash.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, password_hash = ? WHERE id = ?`,
		user.Username, user.Email, user.PasswordHash, user.ID,
	)
	if err != nil {
		return classifyUserWrite(err)
	}
	return nil
}

// Delete removes a user.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	q, err := r.store.conn(ctx)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return deleted(result, err, ErrUserNotFound)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return nil, err
	}

	user, err := scanUser(q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, unavailable(err)
	}
	return user, nil
}

func (r *UserRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	q, err := r.store.conn(ctx)
	if err != nil {
		return false, err
	}

	var one int
	err = q.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, unavailable(err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var (
		user    model.User
		created dbTime
	)
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &created); err != nil {
		return nil, err
	}
	user.CreatedAt = created.Time
	return &user, nil
}

// classifyUserWrite maps unique violations to the offending column. mysql
// names the constraint, sqlite names the column.
func classifyUserWrite(err error) error {
	if !isDuplicateEntry(err) {
		return unavailable(err)
	}
	msg := err.Error()
	if strings.Contains(msg, "uq_users_email'") || strings.Contains(msg, "failed: users.email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}

// deleted interprets the result of a DELETE, reporting notFound when no row matched.
func deleted(result sql.Result, err error, notFound error) error {
	if err != nil {
		return unavailable(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return unavailable(err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
