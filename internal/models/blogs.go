package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogModel struct {
	C *mongo.Collection
}

func blogCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (m *BlogModel) find(filter bson.M, opts ...*options.FindOptions) ([]*Blog, error) {
	ctx, cancel := blogCtx()
	defer cancel()

	var blogs []*Blog
	cur, err := m.C.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &blogs)
	return blogs, err
}

// All lists blogs newest first.
func (m *BlogModel) All() ([]*Blog, error) {
	return m.find(bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
}

func (m *BlogModel) Latest(limit int64) ([]*Blog, error) {
	return m.find(bson.M{}, options.Find().SetSort(bson.M{"date": -1}).SetLimit(limit))
}

// Search matches blog title or content case-insensitively.
func (m *BlogModel) Search(query string) ([]*Blog, error) {
	return m.find(bson.M{"$or": []bson.M{
		{"title": bson.M{"$regex": query, "$options": "i"}},
		{"content": bson.M{"$regex": query, "$options": "i"}},
	}})
}

func (m *BlogModel) Insert(b *Blog) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.Date = time.Now()

	ctx, cancel := blogCtx()
	defer cancel()

	_, err := m.C.InsertOne(ctx, b)
	return err
}

func (m *BlogModel) Delete(id primitive.ObjectID) error {
	ctx, cancel := blogCtx()
	defer cancel()

	_, err := m.C.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
