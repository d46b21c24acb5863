package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

// Flags are the per-product badges rendered on every product listing.
type Flags struct {
	InCart     bool
	Wishlisted bool
}

// Project computes the cart/wishlist badges for one product. The
// authoritative store follows the principal: an authenticated user's
// persisted document, or the anonymous session state otherwise. Pure;
// the same projection backs every rendering path so badges never
// disagree between pages.
func Project(productID primitive.ObjectID, user *models.User, sess *State) Flags {
	key := productID.Hex()

	if user != nil {
		var f Flags
		for _, item := range user.Cart {
			if item.ProductID.Hex() == key {
				f.InCart = true
				break
			}
		}
		for _, id := range user.Wishlist {
			if id.Hex() == key {
				f.Wishlisted = true
				break
			}
		}
		return f
	}

	var f Flags
	for _, item := range sess.Cart {
		if item.ProductID == key {
			f.InCart = true
			break
		}
	}
	for _, id := range sess.Wishlist {
		if id == key {
			f.Wishlisted = true
			break
		}
	}
	return f
}
