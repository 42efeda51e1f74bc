package mongodb

import (
	"context"
	"errors"

	"github.com/cataloghub/cataloghub/internal/domain/product"
	"github.com/cataloghub/cataloghub/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductsRepo struct {
	coll *mongo.Collection
	obs  *observability.Prom
}

func NewProductsRepo(db *mongo.Database, obs *observability.Prom) *ProductsRepo {
	return &ProductsRepo{
		coll: db.Collection("products"),
		obs:  obs,
	}
}

func (r *ProductsRepo) Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error) {
	p := product.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	}

	err := r.obs.ObserveDB("products.create", func() error {
		res, err := r.coll.InsertOne(ctx, p)

		if err != nil {
			return err
		}

		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			p.ID = oid
		}

		return nil
	})

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

// List returns every product in storage order.
func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0)

	err := r.obs.ObserveDB("products.list", func() error {
		cur, err := r.coll.Find(ctx, bson.M{})

		if err != nil {
			return err
		}

		return cur.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return product.Product{}, product.ErrInvalidID
	}

	var p product.Product

	err = r.obs.ObserveDB("products.get_by_id", func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

// Update does a full $set of the mutable fields and returns the post-update
// document. The id never changes.
func (r *ProductsRepo) Update(ctx context.Context, id string, req product.UpdateProductRequest) (product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return product.Product{}, product.ErrInvalidID
	}

	update := bson.M{"$set": bson.M{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"stock":       req.Stock,
		"category":    req.Category,
	}}

	var p product.Product

	err = r.obs.ObserveDB("products.update", func() error {
		return r.coll.FindOneAndUpdate(
			ctx,
			bson.M{"_id": oid},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return product.ErrInvalidID
	}

	var res *mongo.DeleteResult

	err = r.obs.ObserveDB("products.delete", func() error {
		var err error
		res, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
		return err
	})

	if err != nil {
		return err
	}

	// nothing deleted means the id was well formed but absent
	if res.DeletedCount == 0 {
		return product.ErrNotFound
	}

	return nil
}
