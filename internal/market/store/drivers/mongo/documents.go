package mongo

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type imageDoc struct {
	PublicID  string `bson:"public_id"`
	URL       string `bson:"url"`
	SecureURL string `bson:"secure_url"`
	Format    string `bson:"format,omitempty"`
	Width     int    `bson:"width,omitempty"`
	Height    int    `bson:"height,omitempty"`
	Bytes     int64  `bson:"bytes,omitempty"`
}

type accountDoc struct {
	Username string    `bson:"username"`
	Phone    string    `bson:"phone,omitempty"`
	Avatar   *imageDoc `bson:"avatar,omitempty"`
}

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Account   accountDoc         `bson:"account"`
	Token     string             `bson:"token"`
	Hash      string             `bson:"hash"`
	Salt      string             `bson:"salt"`
	CreatedAt time.Time          `bson:"created_at"`
}

// offerDoc keeps product_details as single key documents, the same shape the
// API exposes: [{"MARQUE": "Nike"}, {"TAILLE": "42"}].
type offerDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"product_name"`
	Description string             `bson:"product_description"`
	Price       float64            `bson:"product_price"`
	Details     []bson.D           `bson:"product_details"`
	Image       *imageDoc          `bson:"product_image,omitempty"`
	Owner       primitive.ObjectID `bson:"owner"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toImageDoc(img *domain.Image) *imageDoc {
	if img == nil {
		return nil
	}
	return &imageDoc{
		PublicID:  img.PublicID,
		URL:       img.URL,
		SecureURL: img.SecureURL,
		Format:    img.Format,
		Width:     img.Width,
		Height:    img.Height,
		Bytes:     img.Bytes,
	}
}

func (d *imageDoc) toDomain() *domain.Image {
	if d == nil {
		return nil
	}
	return &domain.Image{
		PublicID:  d.PublicID,
		URL:       d.URL,
		SecureURL: d.SecureURL,
		Format:    d.Format,
		Width:     d.Width,
		Height:    d.Height,
		Bytes:     d.Bytes,
	}
}

func (d accountDoc) toDomain() domain.Account {
	return domain.Account{
		Username: d.Username,
		Phone:    d.Phone,
		Avatar:   d.Avatar.toDomain(),
	}
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Account:   d.Account.toDomain(),
		Token:     d.Token,
		Hash:      d.Hash,
		Salt:      d.Salt,
		CreatedAt: d.CreatedAt,
	}
}

func (d userDoc) toOwner() *domain.Owner {
	account := d.Account.toDomain()
	return &domain.Owner{
		ID:      d.ID.Hex(),
		Email:   d.Email,
		Account: &account,
	}
}

func encodeDetails(details []domain.Detail) []bson.D {
	out := make([]bson.D, 0, len(details))
	for _, d := range details {
		out = append(out, bson.D{{Key: d.Key, Value: d.Value}})
	}
	return out
}

func decodeDetails(docs []bson.D) []domain.Detail {
	details := make([]domain.Detail, 0, len(docs))
	for _, doc := range docs {
		for _, e := range doc {
			value, ok := e.Value.(string)
			if !ok {
				value = fmt.Sprint(e.Value)
			}
			details = append(details, domain.Detail{Key: e.Key, Value: value})
		}
	}
	return details
}

func (d offerDoc) toDomain() domain.Offer {
	o := domain.Offer{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Details:     decodeDetails(d.Details),
		Image:       d.Image.toDomain(),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if !d.Owner.IsZero() {
		o.OwnerID = d.Owner.Hex()
	}
	return o
}
