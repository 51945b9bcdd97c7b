package domain

import "time"

// Detail keys. The values are what existing records and clients use on the
// wire, so they stay as they are.
const (
	DetailBrand     = "MARQUE"
	DetailSize      = "TAILLE"
	DetailCondition = "ETAT"
	DetailColor     = "COULEUR"
	DetailLocation  = "EMPLACEMENT"
)

// Offer limits.
const (
	MaxNameLength        = 50
	MaxDescriptionLength = 500
	MaxPrice             = 10000
)

// PageSize is the fixed number of offers returned per listing page.
const PageSize = 2

// Offer is a marketplace listing.
type Offer struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Details     []Detail
	Image       *Image
	OwnerID     string

	// Owner is set when the offer was loaded together with its owner's
	// public projection.
	Owner *Owner

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Detail is one ordered key/value attribute of an offer.
type Detail struct {
	Key   string
	Value string
}

// Owner is a projection of the user owning an offer. Email is empty when the
// projection should not expose it.
type Owner struct {
	ID      string
	Email   string
	Account *Account
}

// NewDetails builds the attribute list in its canonical order.
func NewDetails(brand, size, condition, color, location string) []Detail {
	return []Detail{
		{Key: DetailBrand, Value: brand},
		{Key: DetailSize, Value: size},
		{Key: DetailCondition, Value: condition},
		{Key: DetailColor, Value: color},
		{Key: DetailLocation, Value: location},
	}
}

// ReplaceDetail overwrites the value of every entry keyed key, in place, and
// reports how many entries changed. A missing key is not added.
func (o *Offer) ReplaceDetail(key, value string) int {
	n := 0
	for i := range o.Details {
		if o.Details[i].Key == key {
			o.Details[i].Value = value
			n++
		}
	}
	return n
}

// DetailValue returns the first value stored under key.
func (o Offer) DetailValue(key string) (string, bool) {
	for _, d := range o.Details {
		if d.Key == key {
			return d.Value, true
		}
	}
	return "", false
}

// IsOwnedBy reports whether userID owns the offer.
func (o Offer) IsOwnedBy(userID string) bool {
	return o.OwnerID != "" && o.OwnerID == userID
}
