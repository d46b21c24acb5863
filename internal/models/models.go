package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"password_hash,omitempty"`
	GoogleID     string               `bson:"google_id,omitempty"`
	Role         string               `bson:"role"`
	Cart         []CartItem           `bson:"cart"`
	Wishlist     []primitive.ObjectID `bson:"wishlist"`
	Created      time.Time            `bson:"created"`
}

// CartItem is one line of a user's persisted cart. The cart is
// ordered and holds at most one entry per product.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Quantity  float64            `bson:"quantity"`
}

type Review struct {
	User    string    `bson:"user"`
	Comment string    `bson:"comment"`
	Rating  int       `bson:"rating"`
	Date    time.Time `bson:"date"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Images      []string           `bson:"images"`
	CategoryID  primitive.ObjectID `bson:"category,omitempty"`
	Description string             `bson:"description,omitempty"`
	Features    []string           `bson:"features,omitempty"`
	Unit        string             `bson:"unit"` // "kg", "lb" or "quantity"
	Ratings     float64            `bson:"ratings"`
	SalesCount  int                `bson:"salesCount"`
	Reviews     []Review           `bson:"reviews"`
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Parent      primitive.ObjectID `bson:"parent,omitempty"`
	Image       string             `bson:"image,omitempty"`
	Description string             `bson:"description,omitempty"`
}

// HasParent reports whether the category is a subcategory. A zero
// parent id stands in for the tree root.
func (c *Category) HasParent() bool {
	return !c.Parent.IsZero()
}

type Blog struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Image   string             `bson:"image"`
	Date    time.Time          `bson:"date"`
}

type Banner struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Type  string             `bson:"type"` // "hero" or "side"
	Image string             `bson:"image"`
	Title string             `bson:"title,omitempty"`
	Text  string             `bson:"text,omitempty"`
	Link  string             `bson:"link,omitempty"`
}
