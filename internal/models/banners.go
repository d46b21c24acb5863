package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type BannerModel struct {
	C *mongo.Collection
}

func bannerCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (m *BannerModel) find(filter bson.M) ([]*Banner, error) {
	ctx, cancel := bannerCtx()
	defer cancel()

	var banners []*Banner
	cur, err := m.C.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &banners)
	return banners, err
}

func (m *BannerModel) All() ([]*Banner, error) {
	return m.find(bson.M{})
}

func (m *BannerModel) ByType(bannerType string) ([]*Banner, error) {
	return m.find(bson.M{"type": bannerType})
}

func (m *BannerModel) Insert(b *Banner) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}

	ctx, cancel := bannerCtx()
	defer cancel()

	_, err := m.C.InsertOne(ctx, b)
	return err
}

func (m *BannerModel) Delete(id primitive.ObjectID) error {
	ctx, cancel := bannerCtx()
	defer cancel()

	_, err := m.C.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
