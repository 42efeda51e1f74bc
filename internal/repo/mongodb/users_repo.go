package mongodb

import (
	"context"
	"errors"

	"github.com/cataloghub/cataloghub/internal/domain/user"
	"github.com/cataloghub/cataloghub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrUserNotFound = errors.New("user not found")

type UsersRepo struct {
	coll *mongo.Collection
	obs  *observability.Prom
}

func NewUsersRepo(db *mongo.Database, obs *observability.Prom) *UsersRepo {
	return &UsersRepo{
		coll: db.Collection("users"),
		obs:  obs,
	}
}

// Save inserts a new user document; Mongo assigns the id, which is written
// back onto u.
func (r *UsersRepo) Save(ctx context.Context, u *user.User) error {
	return r.obs.ObserveDB("users.save", func() error {
		res, err := r.coll.InsertOne(ctx, u)

		if err != nil {
			return err
		}

		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			u.ID = oid
		}

		return nil
	})
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.obs.ObserveDB("users.get_by_email", func() error {
		return r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, ErrUserNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64

	err := r.obs.ObserveDB("users.exists_by_email", func() error {
		var err error
		n, err = r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
		return err
	})

	if err != nil {
		return false, err
	}

	return n > 0, nil
}
