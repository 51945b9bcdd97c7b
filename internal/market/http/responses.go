package http

import (
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/pkg/marketsdk"
)

func imageResponse(img *domain.Image) *marketsdk.ImageResponse {
	if img == nil {
		return nil
	}
	return &marketsdk.ImageResponse{
		PublicID:  img.PublicID,
		URL:       img.URL,
		SecureURL: img.SecureURL,
		Format:    img.Format,
		Width:     img.Width,
		Height:    img.Height,
		Bytes:     img.Bytes,
	}
}

func accountResponse(a domain.Account) marketsdk.AccountResponse {
	return marketsdk.AccountResponse{
		Username: a.Username,
		Phone:    a.Phone,
		Avatar:   imageResponse(a.Avatar),
	}
}

// ownerResponse keeps whichever projection the service attached. An owner
// with only an id is encoded as a bare string by marketsdk.Owner.
func ownerResponse(o *domain.Owner) *marketsdk.Owner {
	if o == nil {
		return nil
	}
	out := &marketsdk.Owner{ID: o.ID, Email: o.Email}
	if o.Account != nil {
		account := accountResponse(*o.Account)
		out.Account = &account
	}
	return out
}

func detailsResponse(details []domain.Detail) []marketsdk.Detail {
	out := make([]marketsdk.Detail, 0, len(details))
	for _, d := range details {
		out = append(out, marketsdk.Detail{d.Key: d.Value})
	}
	return out
}

func offerResponse(o domain.Offer) marketsdk.OfferResponse {
	resp := marketsdk.OfferResponse{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Details:     detailsResponse(o.Details),
		Image:       imageResponse(o.Image),
		Owner:       ownerResponse(o.Owner),
	}
	if !o.CreatedAt.IsZero() {
		resp.CreatedAt = timePtr(o.CreatedAt)
	}
	if !o.UpdatedAt.IsZero() {
		resp.UpdatedAt = timePtr(o.UpdatedAt)
	}
	return resp
}

// listedOfferResponse is the listing projection: the image is reduced to its
// secure URL and timestamps are left out.
func listedOfferResponse(o domain.Offer) marketsdk.OfferResponse {
	resp := offerResponse(o)
	resp.CreatedAt, resp.UpdatedAt = nil, nil
	if o.Image != nil {
		resp.Image = &marketsdk.ImageResponse{SecureURL: o.Image.SecureURL}
	}
	return resp
}

func timePtr(t time.Time) *time.Time { return &t }
