package marketsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListOffers returns one page of offers.
func (c *SDKClient) ListOffers(ctx context.Context, params ListOffersParams) (*OfferListResponse, error) {
	path := "/offers"
	if q := params.Query().Encode(); q != "" {
		path += "?" + q
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		return nil, err
	}

	var out OfferListResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOffer fetches one offer with its owner's public projection. A server
// running with legacy status codes answers an unknown id with null, which is
// returned as a nil offer and no error.
func (c *SDKClient) GetOffer(ctx context.Context, id string) (*OfferResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/offer?id="+url.QueryEscape(id), nil, nil, "")
	if err != nil {
		return nil, err
	}

	var out *OfferResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Publish creates an offer with its picture.
func (s *Session) Publish(ctx context.Context, req PublishRequest, pic Picture) (*OfferResponse, error) {
	fields := map[string]string{
		FieldName:        req.Name,
		FieldDescription: req.Description,
		FieldPrice:       strconv.FormatFloat(req.Price, 'f', -1, 64),
		FieldCondition:   req.Condition,
		FieldCity:        req.City,
		FieldBrand:       req.Brand,
		FieldSize:        req.Size,
		FieldColor:       req.Color,
	}

	body, contentType, err := multipartBody(fields, FieldPicture, &pic)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.doRequest(ctx, http.MethodPost, "/offer/publish", body,
		map[string]string{"Content-Type": contentType}, s.token)
	if err != nil {
		return nil, err
	}

	var out OfferResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOffer replaces the offer's colour.
func (s *Session) UpdateOffer(ctx context.Context, req UpdateOfferRequest) (*OfferResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPut, "/offer/update", req, s.token)
	if err != nil {
		return nil, err
	}

	var out OfferResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOffer removes an offer and its picture.
func (s *Session) DeleteOffer(ctx context.Context, id string) (*MessageResponse, error) {
	resp, err := s.client.doRequest(ctx, http.MethodDelete, "/offer/delete?id="+url.QueryEscape(id), nil, nil, s.token)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
