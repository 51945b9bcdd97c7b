package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/aussiebroadwan/market/internal/market/domain"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrInvalidID     = errors.New("store: invalid id")
)

// Unique user fields reported by ConflictError.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldToken    = "token"
)

// ConflictError reports which unique field a write collided on. It matches
// ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return "store: " + e.Field + " already exists" }

func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

// Store is the root data access interface. Concrete drivers (mongo, sqlite)
// implement this and expose sub-repositories to keep concerns tidy.
//
// There are no multi-document transactions: every write touches a single
// record and relies on the driver's per-record atomicity plus unique indexes.
type Store interface {
	Users() Users
	Offers() Offers

	// NewID allocates an identifier in the driver's native format. Offers
	// need their id before the image upload, which is namespaced by it.
	NewID() string

	ApplyMigrations() error

	// Close releases the underlying connection.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// CreateUser inserts a new user. Collisions on email, username or token
	// return a *ConflictError.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a full user record.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used by signup uniqueness checks and login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername is used by signup uniqueness checks and login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByToken resolves a bearer token. Only ID and Account are
	// populated.
	GetUserByToken(ctx context.Context, token string) (domain.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int64, error)
}

type Offers interface {
	// CreateOffer inserts an offer whose ID was allocated with Store.NewID.
	CreateOffer(ctx context.Context, o domain.Offer) error

	// GetOffer returns an offer without resolving its owner.
	GetOffer(ctx context.Context, id string) (domain.Offer, error)

	// GetOfferWithOwner returns an offer with Owner set to the owner's public
	// projection. Owner is nil if the owning user no longer exists.
	GetOfferWithOwner(ctx context.Context, id string) (domain.Offer, error)

	// ListOffers returns one page of matching offers, owners resolved, and
	// the total match count ignoring pagination.
	ListOffers(ctx context.Context, q OfferQuery) (OfferPage, error)

	// UpdateOfferDetails overwrites the attribute list and bumps updated_at.
	UpdateOfferDetails(ctx context.Context, id string, details []domain.Detail) error

	// DeleteOffer removes the offer record.
	DeleteOffer(ctx context.Context, id string) error
}

// SortDirection orders listings by price.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAscending
	SortDescending
)

// OfferFilter restricts listings by name and inclusive price range. Title is
// matched literally as a case-insensitive substring; empty matches anything.
type OfferFilter struct {
	Title    string
	PriceMin float64
	PriceMax float64
}

// OfferQuery describes one listing page. Filter is nil when the caller gave
// no filter parameters. Offers with equal sort keys, and all offers when Sort
// is SortNone, come back in creation order.
type OfferQuery struct {
	Filter *OfferFilter
	Sort   SortDirection
	Skip   int64
	Limit  int64
}

// OfferPage is the result of ListOffers.
type OfferPage struct {
	Count  int64
	Offers []domain.Offer
}

// Migrate runs every pending up migration from src against driver. Both
// drivers keep their migrations embedded next to their code.
func Migrate(src fs.FS, driverName string, driver database.Driver) error {
	source, err := iofs.New(src, ".")
	if err != nil {
		return fmt.Errorf("migrations source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return fmt.Errorf("migrations init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations up: %w", err)
	}
	return nil
}
