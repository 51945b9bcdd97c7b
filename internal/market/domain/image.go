package domain

// Image is the reference returned by the image host after an upload.
// PublicID is what the host needs to destroy the asset later.
type Image struct {
	PublicID  string
	URL       string
	SecureURL string
	Format    string
	Width     int
	Height    int
	Bytes     int64
}
