package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductModel struct {
	C *mongo.Collection
}

func productCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (m *ProductModel) Get(id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoRecord
	}
	return m.GetByOID(oid)
}

func (m *ProductModel) GetByOID(id primitive.ObjectID) (*Product, error) {
	ctx, cancel := productCtx()
	defer cancel()

	var p Product
	err := m.C.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &p, nil
}

func (m *ProductModel) find(filter bson.M, opts ...*options.FindOptions) ([]*Product, error) {
	ctx, cancel := productCtx()
	defer cancel()

	var products []*Product
	cur, err := m.C.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &products)
	return products, err
}

func (m *ProductModel) All() ([]*Product, error) {
	return m.find(bson.M{})
}

// ByIDs fetches the products for a set of ids; ids with no matching
// document are simply absent from the result, which is how dangling
// cart and wishlist references get filtered out of rendered pages.
func (m *ProductModel) ByIDs(ids []primitive.ObjectID) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}
	return m.find(bson.M{"_id": bson.M{"$in": ids}})
}

func (m *ProductModel) ByCategory(categoryID primitive.ObjectID) ([]*Product, error) {
	return m.find(bson.M{"category": categoryID})
}

// Related lists up to limit products sharing a category, excluding
// the product itself.
func (m *ProductModel) Related(p *Product, limit int64) ([]*Product, error) {
	filter := bson.M{"category": p.CategoryID, "_id": bson.M{"$ne": p.ID}}
	return m.find(filter, options.Find().SetLimit(limit))
}

func (m *ProductModel) BestSelling(limit int64) ([]*Product, error) {
	return m.find(bson.M{}, options.Find().SetSort(bson.M{"salesCount": -1}).SetLimit(limit))
}

func (m *ProductModel) Popular(limit int64) ([]*Product, error) {
	return m.find(bson.M{}, options.Find().SetSort(bson.M{"ratings": -1}).SetLimit(limit))
}

func (m *ProductModel) NewArrivals(limit int64) ([]*Product, error) {
	return m.find(bson.M{}, options.Find().SetSort(bson.M{"_id": -1}).SetLimit(limit))
}

func (m *ProductModel) Featured(limit int64) ([]*Product, error) {
	return m.find(bson.M{}, options.Find().SetLimit(limit))
}

// Search matches product names case-insensitively by substring.
func (m *ProductModel) Search(query string) ([]*Product, error) {
	return m.find(bson.M{"name": bson.M{"$regex": query, "$options": "i"}})
}

// MaxPrice returns the highest catalog price, used to scale the
// price filter slider on listing pages.
func (m *ProductModel) MaxPrice() (float64, error) {
	ctx, cancel := productCtx()
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "max": bson.M{"$max": "$price"}}},
	}
	cur, err := m.C.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []bson.M
	if err = cur.All(ctx, &results); err != nil || len(results) == 0 {
		return 100, nil
	}
	switch v := results[0]["max"].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 100, nil
	}
}

func (m *ProductModel) Insert(p *Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.Unit == "" {
		p.Unit = "quantity"
	}
	if p.Reviews == nil {
		p.Reviews = []Review{}
	}

	ctx, cancel := productCtx()
	defer cancel()

	_, err := m.C.InsertOne(ctx, p)
	return err
}

func (m *ProductModel) Update(id primitive.ObjectID, p *Product) error {
	ctx, cancel := productCtx()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"price":       p.Price,
		"images":      p.Images,
		"category":    p.CategoryID,
		"description": p.Description,
		"features":    p.Features,
		"unit":        p.Unit,
	}}
	_, err := m.C.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (m *ProductModel) Delete(id primitive.ObjectID) error {
	ctx, cancel := productCtx()
	defer cancel()

	_, err := m.C.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AddReview appends a review and recomputes the rolling ratings
// average. At most one review per reviewer per product: a false
// return means the reviewer already has one and nothing changed.
func (m *ProductModel) AddReview(id primitive.ObjectID, r Review) (bool, error) {
	p, err := m.GetByOID(id)
	if err != nil {
		return false, err
	}

	for _, existing := range p.Reviews {
		if existing.User == r.User {
			return false, nil
		}
	}

	r.Date = time.Now()
	reviews := append(p.Reviews, r)
	sum := 0
	for _, rev := range reviews {
		sum += rev.Rating
	}
	avg := float64(sum) / float64(len(reviews))

	ctx, cancel := productCtx()
	defer cancel()

	_, err = m.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"reviews": r},
		"$set":  bson.M{"ratings": avg},
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
