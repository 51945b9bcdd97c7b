package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/events"
	"github.com/aussiebroadwan/market/internal/market/imagehost"
	"github.com/aussiebroadwan/market/internal/market/metrics"
	"github.com/aussiebroadwan/market/internal/market/store"
	"github.com/aussiebroadwan/market/pkg/slogx"
)

// ListQuery holds the listing parameters as received. Nil prices and an
// empty title mean the parameter was absent.
type ListQuery struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	Sort     string
	Page     int
}

type PublishInput struct {
	Name        string
	Description string
	Price       float64
	Condition   string
	City        string
	Brand       string
	Size        string
	Color       string
}

type OfferService struct {
	Store   store.Store
	Images  imagehost.Host
	Events  events.Publisher
	Metrics *metrics.Metrics
}

// List returns one page of offers with their owners' public projection.
func (s *OfferService) List(ctx context.Context, q ListQuery) (store.OfferPage, error) {
	sq, err := buildOfferQuery(q)
	if err != nil {
		return store.OfferPage{}, err
	}
	return s.Store.Offers().ListOffers(ctx, sq)
}

// buildOfferQuery turns listing parameters into a store query. The filter
// only applies when a title or a price bound is given; missing bounds
// default to 0 and domain.MaxPrice.
func buildOfferQuery(q ListQuery) (store.OfferQuery, error) {
	sq := store.OfferQuery{Limit: domain.PageSize}

	if q.Title != "" || q.PriceMin != nil || q.PriceMax != nil {
		f := &store.OfferFilter{Title: q.Title, PriceMin: 0, PriceMax: domain.MaxPrice}
		if q.PriceMin != nil {
			f.PriceMin = *q.PriceMin
		}
		if q.PriceMax != nil {
			f.PriceMax = *q.PriceMax
		}
		sq.Filter = f
	}

	switch strings.ToLower(q.Sort) {
	case "":
		sq.Sort = store.SortNone
	case "asc", "ascending", "1":
		sq.Sort = store.SortAscending
	case "desc", "descending", "-1":
		sq.Sort = store.SortDescending
	default:
		return store.OfferQuery{}, fmt.Errorf("%w: sort must be asc or desc", ErrInvalidQuery)
	}

	// Pages past the representable skip clamp to it, which is past any
	// stored offer.
	if q.Page > 1 {
		if int64(q.Page-1) > math.MaxInt64/domain.PageSize {
			sq.Skip = math.MaxInt64
		} else {
			sq.Skip = int64(q.Page-1) * domain.PageSize
		}
	}
	return sq, nil
}

// Get returns an offer with its owner's public projection.
func (s *OfferService) Get(ctx context.Context, id string) (domain.Offer, error) {
	o, err := s.Store.Offers().GetOfferWithOwner(ctx, id)
	if err != nil {
		return domain.Offer{}, mapOfferLookup(err)
	}
	return o, nil
}

// Publish validates, uploads the picture under the offer's folder and
// persists the offer. Nothing is uploaded when validation fails, and the
// upload is removed again if the insert fails.
func (s *OfferService) Publish(ctx context.Context, owner domain.User, in PublishInput, pic *imagehost.File) (domain.Offer, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate limits and the picture
	if !withinLimits(in) {
		return domain.Offer{}, ErrOfferInvalid
	}
	if pic == nil {
		return domain.Offer{}, ErrPictureRequired
	}

	// 2. Build the offer; the id namespaces the upload folder
	now := time.Now().UTC()
	o := domain.Offer{
		ID:          s.Store.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Details:     domain.NewDetails(in.Brand, in.Size, in.Condition, in.Color, in.City),
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// 3. Upload
	img, err := s.Images.Upload(ctx, *pic, imagehost.OfferFolder(o.ID))
	s.Metrics.Upload(err)
	if err != nil {
		log.Error("offer picture upload failed", slog.String("offer_id", o.ID), slog.Any("error", err))
		return domain.Offer{}, fmt.Errorf("%w: %w", ErrImageHost, err)
	}
	o.Image = &img

	// 4. Persist
	if err := s.Store.Offers().CreateOffer(ctx, o); err != nil {
		log.Error("failed to persist offer", slog.String("offer_id", o.ID), slog.Any("error", err))
		if derr := s.Images.Destroy(ctx, img.PublicID); derr != nil {
			log.Warn("failed to remove orphaned offer picture",
				slog.String("public_id", img.PublicID),
				slog.Any("error", derr),
			)
		}
		return domain.Offer{}, err
	}

	ref := owner.OwnerRef()
	o.Owner = &ref

	s.Metrics.Offer(metrics.ActionPublished)
	s.publish(ctx, events.OfferPublished, o)
	log.Info("offer published", slog.String("offer_id", o.ID), slog.String("owner_id", o.OwnerID))
	return o, nil
}

// UpdateColor replaces every COULEUR detail. An offer without one is left
// unchanged and returned as is. The returned offer carries only the owner id.
func (s *OfferService) UpdateColor(ctx context.Context, userID, offerID, color string) (domain.Offer, error) {
	log := slogx.FromContext(ctx)

	o, err := s.Store.Offers().GetOffer(ctx, offerID)
	if err != nil {
		return domain.Offer{}, mapOfferLookup(err)
	}
	if !o.IsOwnedBy(userID) {
		log.Warn("offer update by non owner", slog.String("offer_id", o.ID), slog.String("user_id", userID))
		return domain.Offer{}, ErrNotOwner
	}

	if o.ReplaceDetail(domain.DetailColor, color) > 0 {
		if err := s.Store.Offers().UpdateOfferDetails(ctx, o.ID, o.Details); err != nil {
			return domain.Offer{}, mapOfferLookup(err)
		}
		o.UpdatedAt = time.Now().UTC()
		s.Metrics.Offer(metrics.ActionUpdated)
		s.publish(ctx, events.OfferUpdated, o)
	}

	o.Owner = &domain.Owner{ID: o.OwnerID}
	return o, nil
}

// Delete removes the offer's picture, then the offer. If the image host
// fails the record is kept so the call can be retried.
func (s *OfferService) Delete(ctx context.Context, userID, offerID string) error {
	log := slogx.FromContext(ctx)

	o, err := s.Store.Offers().GetOffer(ctx, offerID)
	if err != nil {
		return mapOfferLookup(err)
	}
	if !o.IsOwnedBy(userID) {
		log.Warn("offer delete by non owner", slog.String("offer_id", o.ID), slog.String("user_id", userID))
		return ErrNotOwner
	}

	if o.Image != nil && o.Image.PublicID != "" {
		err := s.Images.Destroy(ctx, o.Image.PublicID)
		if err != nil && !errors.Is(err, imagehost.ErrNotFound) {
			log.Error("offer picture removal failed", slog.String("offer_id", o.ID), slog.Any("error", err))
			return fmt.Errorf("%w: %w", ErrImageHost, err)
		}
	}

	if err := s.Store.Offers().DeleteOffer(ctx, o.ID); err != nil {
		return mapOfferLookup(err)
	}

	s.Metrics.Offer(metrics.ActionDeleted)
	s.publish(ctx, events.OfferDeleted, o)
	log.Info("offer deleted", slog.String("offer_id", o.ID))
	return nil
}

func (s *OfferService) publish(ctx context.Context, t events.Type, o domain.Offer) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.NewOfferEvent(t, o)); err != nil {
		slogx.FromContext(ctx).Warn("failed to publish offer event",
			slog.String("type", string(t)),
			slog.String("offer_id", o.ID),
			slog.Any("error", err),
		)
	}
}

func withinLimits(in PublishInput) bool {
	return in.Name != "" &&
		utf8.RuneCountInString(in.Name) <= domain.MaxNameLength &&
		utf8.RuneCountInString(in.Description) <= domain.MaxDescriptionLength &&
		in.Price >= 0 && in.Price <= domain.MaxPrice
}

func mapOfferLookup(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrOfferNotFound
	case errors.Is(err, store.ErrInvalidID):
		return ErrInvalidOfferID
	default:
		return err
	}
}
