package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/pkg/idx"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store is the embedded SQLite driver, used for local development and tests.
type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" gets its own empty database, so pin the
	// pool to a single connection.
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// NewID returns a ULID; sqlite rows are keyed by ULID so id order is creation
// order.
func (s *Store) NewID() string { return idx.New().String() }

func (s *Store) Users() store.Users   { return &usersRepo{db: s.db} }
func (s *Store) Offers() store.Offers { return &offersRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns UNIQUE violations into *store.ConflictError naming the
// offending column.
func mapConstraint(err error) error {
	var se *msqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return err
	}

	msg := se.Error()
	switch {
	case strings.Contains(msg, "users.email"):
		return &store.ConflictError{Field: store.FieldEmail}
	case strings.Contains(msg, "users.username"):
		return &store.ConflictError{Field: store.FieldUsername}
	case strings.Contains(msg, "users.token"):
		return &store.ConflictError{Field: store.FieldToken}
	default:
		return store.ErrAlreadyExists
	}
}

// checkID rejects identifiers that cannot be ULIDs, mirroring the mongo
// driver's ObjectID validation.
func checkID(id string) error {
	if !idx.Valid(id) {
		return store.ErrInvalidID
	}
	return nil
}

type imageJSON struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}

func encodeImage(img *domain.Image) (sql.NullString, error) {
	if img == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(imageJSON{
		PublicID:  img.PublicID,
		URL:       img.URL,
		SecureURL: img.SecureURL,
		Format:    img.Format,
		Width:     img.Width,
		Height:    img.Height,
		Bytes:     img.Bytes,
	})
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeImage(ns sql.NullString) (*domain.Image, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var j imageJSON
	if err := json.Unmarshal([]byte(ns.String), &j); err != nil {
		return nil, err
	}
	return &domain.Image{
		PublicID:  j.PublicID,
		URL:       j.URL,
		SecureURL: j.SecureURL,
		Format:    j.Format,
		Width:     j.Width,
		Height:    j.Height,
		Bytes:     j.Bytes,
	}, nil
}

// Details are stored the same way they travel on the wire: an array of
// single key objects, e.g. [{"MARQUE":"Nike"},{"TAILLE":"42"}].
func encodeDetails(details []domain.Detail) (string, error) {
	out := make([]map[string]string, 0, len(details))
	for _, d := range details {
		out = append(out, map[string]string{d.Key: d.Value})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeDetails(s string) ([]domain.Detail, error) {
	var raw []map[string]string
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	details := make([]domain.Detail, 0, len(raw))
	for _, m := range raw {
		for k, v := range m {
			details = append(details, domain.Detail{Key: k, Value: v})
		}
	}
	return details, nil
}
