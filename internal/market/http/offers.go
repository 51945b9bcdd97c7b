package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/market/internal/market/service"
	"github.com/aussiebroadwan/market/pkg/httpx"
	"github.com/aussiebroadwan/market/pkg/marketsdk"
)

// OffersHandler serves the offer endpoints.
type OffersHandler struct {
	OfferService *service.OfferService
	policy       statusPolicy
	maxBodyBytes int64
}

// HandleList handles GET /offers
//
//	@Summary		List offers
//	@Description	Returns one page of two offers. The filter applies when a title or a price bound is given; missing bounds default to 0 and 10000.
//	@Tags			Offers
//	@Produce		json
//	@Param			title		query		string	false	"Case-insensitive substring of the product name"
//	@Param			priceMin	query		number	false	"Inclusive lower price bound"
//	@Param			priceMax	query		number	false	"Inclusive upper price bound"
//	@Param			sort		query		string	false	"asc or desc, by price"
//	@Param			page		query		int		false	"1-based page"
//	@Success		200			{object}	marketsdk.OfferListResponse	"count and offers"
//	@Failure		400			{object}	marketsdk.ErrorResponse		"invalid query"
//	@Router			/offers [get].
func (h *OffersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	page, err := h.OfferService.List(r.Context(), q)
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	resp := marketsdk.OfferListResponse{
		Count:  page.Count,
		Offers: make([]marketsdk.OfferResponse, 0, len(page.Offers)),
	}
	for _, o := range page.Offers {
		resp.Offers = append(resp.Offers, listedOfferResponse(o))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// parseListQuery reads the listing parameters. Empty values count as absent.
func parseListQuery(values url.Values) (service.ListQuery, error) {
	q := service.ListQuery{
		Title: values.Get("title"),
		Sort:  strings.TrimSpace(values.Get("sort")),
	}

	price := func(key string) (*float64, error) {
		raw := strings.TrimSpace(values.Get(key))
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", service.ErrInvalidQuery, key)
		}
		return &v, nil
	}

	var err error
	if q.PriceMin, err = price("priceMin"); err != nil {
		return service.ListQuery{}, err
	}
	if q.PriceMax, err = price("priceMax"); err != nil {
		return service.ListQuery{}, err
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil {
			return service.ListQuery{}, fmt.Errorf("%w: page must be an integer", service.ErrInvalidQuery)
		}
	}
	return q, nil
}

// HandleGet handles GET /offer?id=
//
//	@Summary		Fetch an offer
//	@Description	Returns one offer with its owner's public projection.
//	@Tags			Offers
//	@Produce		json
//	@Param			id	query		string	true	"Offer id"
//	@Success		200	{object}	marketsdk.OfferResponse
//	@Failure		400	{object}	marketsdk.ErrorResponse	"malformed id"
//	@Failure		404	{object}	marketsdk.ErrorResponse	"Offer not found"
//	@Router			/offer [get].
func (h *OffersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	o, err := h.OfferService.Get(r.Context(), id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, offerResponse(o))
	case h.policy.legacy && (isNotFound(err) || id == ""):
		// Legacy clients expect a 200 with a null body, a missing id
		// included.
		httpx.WriteJSON(w, http.StatusOK, nil)
	default:
		h.policy.writeError(w, r, err)
	}
}

// HandlePublish handles POST /offer/publish
//
//	@Summary		Publish an offer
//	@Description	Creates an offer from a multipart form. The picture is uploaded under the offer's own folder.
//	@Tags			Offers
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization		header		string	true	"Bearer token"
//	@Param			product_name		formData	string	true	"At most 50 characters"
//	@Param			product_description	formData	string	false	"At most 500 characters"
//	@Param			product_price		formData	number	true	"0 to 10000"
//	@Param			condition			formData	string	false	"ETAT"
//	@Param			city				formData	string	false	"EMPLACEMENT"
//	@Param			brand				formData	string	false	"MARQUE"
//	@Param			size				formData	string	false	"TAILLE"
//	@Param			color				formData	string	false	"COULEUR"
//	@Param			picture				formData	file	true	"Offer picture (alias photo)"
//	@Success		200					{object}	marketsdk.OfferResponse
//	@Failure		400					{object}	marketsdk.MessageResponse	"limits exceeded or picture missing"
//	@Failure		401					{object}	marketsdk.ErrorResponse
//	@Failure		502					{object}	marketsdk.ErrorResponse	"image host failure"
//	@Router			/offer/publish [post].
func (h *OffersHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	owner, _ := userFromContext(ctx)

	// 1. Bind
	if err := httpx.ParseForm(w, r, h.maxBodyBytes); err != nil {
		h.policy.writeError(w, r, err)
		return
	}
	if err := httpx.RejectUnknownFields(r, marketsdk.PublishFields...); err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	form := formValues{r: r}
	price, err := form.float(marketsdk.FieldPrice)
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}
	req := marketsdk.PublishRequest{
		Name:        form.get(marketsdk.FieldName),
		Description: form.get(marketsdk.FieldDescription),
		Price:       price,
		Condition:   form.get(marketsdk.FieldCondition),
		City:        form.get(marketsdk.FieldCity),
		Brand:       form.get(marketsdk.FieldBrand),
		Size:        form.get(marketsdk.FieldSize),
		Color:       form.get(marketsdk.FieldColor),
	}

	// 2. Validate: the name, description and price limits share one message
	if err := marketsdk.Validate(req); err != nil {
		for _, field := range marketsdk.InvalidFields(err) {
			switch field {
			case marketsdk.FieldName, marketsdk.FieldDescription, marketsdk.FieldPrice:
				h.policy.writeError(w, r, service.ErrOfferInvalid)
				return
			}
		}
		h.policy.writeError(w, r, &httpx.BodyError{
			Reason: "invalid field(s): " + strings.Join(marketsdk.InvalidFields(err), ", "),
		})
		return
	}

	// 3. Picture
	pic, closer, err := openPicture(r, marketsdk.FieldPicture, marketsdk.FieldPhoto)
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}
	defer func() { _ = closer.Close() }()

	// 4. Publish
	o, err := h.OfferService.Publish(ctx, owner, service.PublishInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		City:        req.City,
		Brand:       req.Brand,
		Size:        req.Size,
		Color:       req.Color,
	}, pic)
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, offerResponse(o))
}

// HandleUpdate handles PUT /offer/update
//
//	@Summary		Change an offer's colour
//	@Description	Replaces every COULEUR detail of an offer the caller owns. An offer without one is returned unchanged.
//	@Tags			Offers
//	@Accept			json,mpfd,x-www-form-urlencoded
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string						true	"Bearer token"
//	@Param			request			body		marketsdk.UpdateOfferRequest	true	"Offer id and colour"
//	@Success		200				{object}	marketsdk.OfferResponse		"owner is the bare id"
//	@Failure		400				{object}	marketsdk.ErrorResponse
//	@Failure		403				{object}	marketsdk.ErrorResponse	"not the owner"
//	@Failure		404				{object}	marketsdk.ErrorResponse	"Offer not found"
//	@Router			/offer/update [put].
func (h *OffersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	var req marketsdk.UpdateOfferRequest
	err := bindRequest(w, r, h.maxBodyBytes, &req, marketsdk.UpdateOfferFields, func(form formValues) error {
		req = marketsdk.UpdateOfferRequest{
			ID:    form.get(marketsdk.FieldID),
			Color: form.get(marketsdk.FieldColor),
		}
		return nil
	})
	if err == nil {
		if verr := marketsdk.Validate(req); verr != nil {
			err = &httpx.BodyError{Reason: "invalid field(s): " + strings.Join(marketsdk.InvalidFields(verr), ", ")}
		}
	}
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	o, err := h.OfferService.UpdateColor(ctx, user.ID, req.ID, req.Color)
	if err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, offerResponse(o))
}

// HandleDelete handles DELETE /offer/delete?id=
//
//	@Summary		Delete an offer
//	@Description	Removes the offer's picture from the image host, then the offer. When the image host fails the offer is kept.
//	@Tags			Offers
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Param			id				query		string	true	"Offer id"
//	@Success		200				{object}	marketsdk.MessageResponse	"Offer deleted"
//	@Failure		400				{object}	marketsdk.ErrorResponse
//	@Failure		403				{object}	marketsdk.ErrorResponse	"not the owner"
//	@Failure		404				{object}	marketsdk.ErrorResponse	"Offer not found"
//	@Failure		502				{object}	marketsdk.ErrorResponse	"image host failure"
//	@Router			/offer/delete [delete].
func (h *OffersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := userFromContext(ctx)

	if err := h.OfferService.Delete(ctx, user.ID, r.URL.Query().Get("id")); err != nil {
		h.policy.writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, marketsdk.MessageResponse{Message: "Offer deleted"})
}
