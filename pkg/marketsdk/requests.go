package marketsdk

import (
	"net/url"
	"strconv"
)

// Form field names, shared by the form binder and the client.
const (
	FieldEmail       = "email"
	FieldUsername    = "username"
	FieldPhone       = "phone"
	FieldPassword    = "password"
	FieldPicture     = "picture"
	FieldPhoto       = "photo"
	FieldName        = "product_name"
	FieldDescription = "product_description"
	FieldPrice       = "product_price"
	FieldCondition   = "condition"
	FieldCity        = "city"
	FieldBrand       = "brand"
	FieldSize        = "size"
	FieldColor       = "color"
	FieldID          = "id"
)

// SignupRequest is the body of POST /user/signup. The optional picture is
// sent as a multipart file named "picture".
type SignupRequest struct {
	Email    string `json:"email" validate:"required,max=254"`
	Username string `json:"username" validate:"required,max=64"`
	Phone    string `json:"phone,omitempty" validate:"max=32"`
	Password string `json:"password" validate:"required,max=256"`
}

// SignupFields lists the accepted form fields.
var SignupFields = []string{FieldEmail, FieldUsername, FieldPhone, FieldPassword, FieldPicture}

// LoginRequest is the body of POST /user/login. Username wins when both
// identifiers are given.
type LoginRequest struct {
	Username string `json:"username,omitempty" validate:"required_without=Email,max=64"`
	Email    string `json:"email,omitempty" validate:"required_without=Username,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

var LoginFields = []string{FieldUsername, FieldEmail, FieldPassword}

// PublishRequest is the multipart body of POST /offer/publish. The picture
// file is sent separately as "picture" (or "photo").
type PublishRequest struct {
	Name        string  `json:"product_name" validate:"required,max=50"`
	Description string  `json:"product_description" validate:"max=500"`
	Price       float64 `json:"product_price" validate:"gte=0,lte=10000"`
	Condition   string  `json:"condition" validate:"max=64"`
	City        string  `json:"city" validate:"max=64"`
	Brand       string  `json:"brand" validate:"max=64"`
	Size        string  `json:"size" validate:"max=64"`
	Color       string  `json:"color" validate:"max=64"`
}

var PublishFields = []string{
	FieldName, FieldDescription, FieldPrice,
	FieldCondition, FieldCity, FieldBrand, FieldSize, FieldColor,
	FieldPicture, FieldPhoto,
}

// UpdateOfferRequest is the body of PUT /offer/update.
type UpdateOfferRequest struct {
	ID    string `json:"id" validate:"required"`
	Color string `json:"color" validate:"required,max=64"`
}

var UpdateOfferFields = []string{FieldID, FieldColor}

// Sort values accepted by GET /offers.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListOffersParams are the query parameters of GET /offers. Nil prices and a
// zero page are omitted.
type ListOffersParams struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	Sort     string
	Page     int
}

// Query encodes the parameters.
func (p ListOffersParams) Query() url.Values {
	q := url.Values{}
	if p.Title != "" {
		q.Set("title", p.Title)
	}
	if p.PriceMin != nil {
		q.Set("priceMin", strconv.FormatFloat(*p.PriceMin, 'f', -1, 64))
	}
	if p.PriceMax != nil {
		q.Set("priceMax", strconv.FormatFloat(*p.PriceMax, 'f', -1, 64))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Page != 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	return q
}

// Price is a helper for the optional price bounds.
func Price(v float64) *float64 { return &v }
