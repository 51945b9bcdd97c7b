package marketsdk

import "time"

// ============================================================================
// Shared Types
// ============================================================================

// ErrorResponse is the {"error": "..."} envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the {"message": "..."} envelope used for confirmations
// and for the publish validation failure.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImageResponse is an image host reference. Listings only carry SecureURL.
type ImageResponse struct {
	PublicID  string `json:"public_id,omitempty"`
	URL       string `json:"url,omitempty"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format,omitempty"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}

// AccountResponse is the public part of a user.
type AccountResponse struct {
	Username string         `json:"username"`
	Phone    string         `json:"phone,omitempty"`
	Avatar   *ImageResponse `json:"avatar"`
}

// ============================================================================
// User Types
// ============================================================================

// SignupResponse is returned by POST /user/signup. Token is the bearer
// credential for every authenticated call.
type SignupResponse struct {
	ID      string          `json:"_id"`
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// ============================================================================
// Offer Types
// ============================================================================

// Detail is a single key attribute such as {"MARQUE": "Nike"}.
type Detail map[string]string

// OfferResponse is an offer as returned by publish, update and fetch, and,
// with a reduced image and no timestamps, by the listing.
type OfferResponse struct {
	ID          string         `json:"_id"`
	Name        string         `json:"product_name"`
	Description string         `json:"product_description"`
	Price       float64        `json:"product_price"`
	Details     []Detail       `json:"product_details"`
	Image       *ImageResponse `json:"product_image,omitempty"`
	Owner       *Owner         `json:"owner,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// Value returns the first detail value stored under key.
func (o OfferResponse) Value(key string) (string, bool) {
	for _, d := range o.Details {
		if v, ok := d[key]; ok {
			return v, true
		}
	}
	return "", false
}

// OfferListResponse is returned by GET /offers. Count ignores pagination.
type OfferListResponse struct {
	Count  int64           `json:"count"`
	Offers []OfferResponse `json:"offers"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
