package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryModel struct {
	C *mongo.Collection
}

// CategoryNode is a top-level category with its resolved children,
// used by the navigation sidebar and the categories page.
type CategoryNode struct {
	Category
	Subcategories []*Category
}

func categoryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (m *CategoryModel) find(filter bson.M) ([]*Category, error) {
	ctx, cancel := categoryCtx()
	defer cancel()

	var cats []*Category
	cur, err := m.C.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	err = cur.All(ctx, &cats)
	return cats, err
}

func (m *CategoryModel) All() ([]*Category, error) {
	return m.find(bson.M{})
}

// AllExcept lists every category but one; the edit form uses it so a
// category cannot be picked as its own parent.
func (m *CategoryModel) AllExcept(id primitive.ObjectID) ([]*Category, error) {
	return m.find(bson.M{"_id": bson.M{"$ne": id}})
}

func (m *CategoryModel) TopLevel() ([]*Category, error) {
	return m.find(bson.M{"parent": nil})
}

func (m *CategoryModel) Children(parent primitive.ObjectID) ([]*Category, error) {
	return m.find(bson.M{"parent": parent})
}

func (m *CategoryModel) Get(id primitive.ObjectID) (*Category, error) {
	ctx, cancel := categoryCtx()
	defer cancel()

	var c Category
	err := m.C.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &c, nil
}

// Nested resolves the two-level tree the storefront renders: each
// root category with its direct subcategories.
func (m *CategoryModel) Nested() ([]*CategoryNode, error) {
	top, err := m.TopLevel()
	if err != nil {
		return nil, err
	}

	nodes := make([]*CategoryNode, 0, len(top))
	for _, cat := range top {
		subs, err := m.Children(cat.ID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &CategoryNode{Category: *cat, Subcategories: subs})
	}
	return nodes, nil
}

// Leaves lists categories with no children; products attach only to
// leaves, so the admin product form offers exactly these.
func (m *CategoryModel) Leaves() ([]*Category, error) {
	ctx, cancel := categoryCtx()
	defer cancel()

	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from":         "categories",
			"localField":   "_id",
			"foreignField": "parent",
			"as":           "children",
		}},
		{"$match": bson.M{"children.0": bson.M{"$exists": false}}},
	}
	cur, err := m.C.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []*Category
	err = cur.All(ctx, &cats)
	return cats, err
}

func (m *CategoryModel) Insert(c *Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}

	ctx, cancel := categoryCtx()
	defer cancel()

	doc := bson.M{
		"_id":         c.ID,
		"name":        c.Name,
		"image":       c.Image,
		"description": c.Description,
	}
	if c.HasParent() {
		doc["parent"] = c.Parent
	} else {
		doc["parent"] = nil
	}
	_, err := m.C.InsertOne(ctx, doc)
	return err
}

func (m *CategoryModel) Update(id primitive.ObjectID, c *Category) error {
	ctx, cancel := categoryCtx()
	defer cancel()

	set := bson.M{
		"name":        c.Name,
		"image":       c.Image,
		"description": c.Description,
	}
	if c.HasParent() {
		set["parent"] = c.Parent
	} else {
		set["parent"] = nil
	}
	_, err := m.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (m *CategoryModel) Delete(id primitive.ObjectID) error {
	ctx, cancel := categoryCtx()
	defer cancel()

	_, err := m.C.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
