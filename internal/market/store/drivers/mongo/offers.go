package mongo

import (
	"context"
	"regexp"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"
	"github.com/aussiebroadwan/market/internal/market/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type offersRepo struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

// ownerProjection is the public view of an owner: id, email and account.
var ownerProjection = bson.M{"email": 1, "account": 1}

func (r *offersRepo) CreateOffer(ctx context.Context, o domain.Offer) error {
	oid, err := parseID(o.ID)
	if err != nil {
		return err
	}
	owner, err := parseID(o.OwnerID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}

	_, err = r.coll.InsertOne(ctx, offerDoc{
		ID:          oid,
		Name:        o.Name,
		Description: o.Description,
		Price:       o.Price,
		Details:     encodeDetails(o.Details),
		Image:       toImageDoc(o.Image),
		Owner:       owner,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	})
	return mapDuplicate(err)
}

func (r *offersRepo) GetOffer(ctx context.Context, id string) (domain.Offer, error) {
	doc, err := r.findOne(ctx, id)
	if err != nil {
		return domain.Offer{}, err
	}
	return doc.toDomain(), nil
}

func (r *offersRepo) GetOfferWithOwner(ctx context.Context, id string) (domain.Offer, error) {
	doc, err := r.findOne(ctx, id)
	if err != nil {
		return domain.Offer{}, err
	}

	o := doc.toDomain()
	owners, err := r.loadOwners(ctx, []primitive.ObjectID{doc.Owner})
	if err != nil {
		return domain.Offer{}, err
	}
	o.Owner = owners[doc.Owner]
	return o, nil
}

func (r *offersRepo) ListOffers(ctx context.Context, q store.OfferQuery) (store.OfferPage, error) {
	filter := offerFilter(q.Filter)

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return store.OfferPage{}, err
	}

	opts := options.Find().
		SetSort(offerSort(q.Sort)).
		SetProjection(bson.M{
			"product_name":        1,
			"product_description": 1,
			"product_price":       1,
			"product_details":     1,
			"product_image":       1,
			"owner":               1,
		})
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return store.OfferPage{}, err
	}

	var docs []offerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return store.OfferPage{}, err
	}

	// Resolve owners with a single $in query instead of one lookup per offer.
	ownerIDs := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ownerIDs = append(ownerIDs, d.Owner)
	}
	owners, err := r.loadOwners(ctx, ownerIDs)
	if err != nil {
		return store.OfferPage{}, err
	}

	page := store.OfferPage{Count: count, Offers: make([]domain.Offer, 0, len(docs))}
	for _, d := range docs {
		o := d.toDomain()
		o.Owner = owners[d.Owner]
		page.Offers = append(page.Offers, o)
	}
	return page, nil
}

func (r *offersRepo) UpdateOfferDetails(ctx context.Context, id string, details []domain.Detail) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"product_details": encodeDetails(details),
		"updated_at":      time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *offersRepo) DeleteOffer(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *offersRepo) findOne(ctx context.Context, id string) (offerDoc, error) {
	oid, err := parseID(id)
	if err != nil {
		return offerDoc{}, err
	}

	var doc offerDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return offerDoc{}, mapNotFound(err)
	}
	return doc, nil
}

// loadOwners fetches the public projection of every distinct id. Ids with no
// matching user are absent from the map.
func (r *offersRepo) loadOwners(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Owner, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if id.IsZero() {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	owners := make(map[primitive.ObjectID]*domain.Owner, len(unique))
	if len(unique) == 0 {
		return owners, nil
	}

	cur, err := r.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": unique}},
		options.Find().SetProjection(ownerProjection),
	)
	if err != nil {
		return nil, err
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		owners[d.ID] = d.toOwner()
	}
	return owners, nil
}

// offerFilter matches the title as an escaped, case-insensitive regex and
// the price inclusively.
func offerFilter(f *store.OfferFilter) bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M{
		"product_name": primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"},
		"product_price": bson.M{
			"$gte": f.PriceMin,
			"$lte": f.PriceMax,
		},
	}
}

// offerSort always ends on _id so equal prices keep insertion order.
func offerSort(dir store.SortDirection) bson.D {
	switch dir {
	case store.SortAscending:
		return bson.D{{Key: "product_price", Value: 1}, {Key: "_id", Value: 1}}
	case store.SortDescending:
		return bson.D{{Key: "product_price", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
}
