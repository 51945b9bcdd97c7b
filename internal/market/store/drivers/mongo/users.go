package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/market/internal/market/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type usersRepo struct {
	coll *mongo.Collection
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	oid, err := parseID(u.ID)
	if err != nil {
		return err
	}

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.coll.InsertOne(ctx, userDoc{
		ID:    oid,
		Email: u.Email,
		Account: accountDoc{
			Username: u.Account.Username,
			Phone:    u.Account.Phone,
			Avatar:   toImageDoc(u.Account.Avatar),
		},
		Token:     u.Token,
		Hash:      u.Hash,
		Salt:      u.Salt,
		CreatedAt: createdAt,
	})
	return mapDuplicate(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return domain.User{}, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"account.username": username})
}

// GetUserByToken only loads _id and account; the credentials stay in the
// database.
func (r *usersRepo) GetUserByToken(ctx context.Context, token string) (domain.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"account": 1})
	return r.findOne(ctx, bson.M{"token": token}, opts)
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.D{})
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}
