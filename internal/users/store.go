package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zfit/zfit/internal/models"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no user has the requested email.
var ErrNotFound = errors.New("user not found")

// Store keeps user documents in SQLite, one JSON document per email.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the user database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating users dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening users db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS users (
		email      TEXT PRIMARY KEY,
		doc        TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating users table: %w", err)
	}

	return &Store{db: db}, nil
}

// NewUser builds a user with a bcrypt hash of password.
func NewUser(email, password, name string) (models.User, error) {
	email = normalize(email)
	if email == "" {
		return models.User{}, errors.New("email is required")
	}
	if password == "" {
		return models.User{}, errors.New("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}
	return models.User{Email: email, Name: name, PasswordHash: string(hash)}, nil
}

// CheckPassword reports whether password matches the user's hash.
func CheckPassword(u models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Save inserts the user or replaces the document stored under its email.
func (s *Store) Save(ctx context.Context, u models.User) error {
	u.Email = normalize(u.Email)
	if u.Email == "" {
		return errors.New("email is required")
	}
	doc, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (email, doc) VALUES (?, ?)
		 ON CONFLICT(email) DO UPDATE SET doc = excluded.doc, updated_at = CURRENT_TIMESTAMP`,
		u.Email, string(doc))
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// FindByEmail returns the user stored under email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM users WHERE email = ?`, normalize(email)).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("finding user: %w", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(doc), &u); err != nil {
		return models.User{}, fmt.Errorf("decoding user: %w", err)
	}
	return u, nil
}

// Delete removes the user stored under email. Deleting an absent user
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, email string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE email = ?`, normalize(email))
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the user database.
func (s *Store) Close() error {
	return s.db.Close()
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
