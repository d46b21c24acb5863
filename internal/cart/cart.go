// Package cart holds the pure cart/wishlist logic shared by guest
// sessions and authenticated users: the anonymous session snapshot,
// the merge run at login time, and the in-cart/wishlisted projection
// used on every product-rendering page.
//
// Product identity appears in two representations: the session keeps
// plain hex strings, the user document keeps ObjectIDs. The hex
// string is the canonical form; every cross-representation
// comparison in this package normalizes through it.
package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

// Item is one line of the anonymous session cart.
type Item struct {
	ProductID string
	Quantity  float64
}

// State is a snapshot of the anonymous session containers. Handlers
// read it out of the session at the start of a request and write it
// back after mutating, rather than sharing an ambient bag.
type State struct {
	Cart     []Item
	Wishlist []string
}

// Empty reports whether there is anything to merge or render.
func (s *State) Empty() bool {
	return len(s.Cart) == 0 && len(s.Wishlist) == 0
}

// Clear drops both containers.
func (s *State) Clear() {
	s.Cart = nil
	s.Wishlist = nil
}

// AddToCart increments the quantity for a product already in the
// cart, or appends a new line.
func (s *State) AddToCart(productID string, quantity float64) {
	for i := range s.Cart {
		if s.Cart[i].ProductID == productID {
			s.Cart[i].Quantity += quantity
			return
		}
	}
	s.Cart = append(s.Cart, Item{ProductID: productID, Quantity: quantity})
}

// SetQuantity replaces the quantity at a cart position. Out-of-range
// indexes and non-positive quantities are no-ops.
func (s *State) SetQuantity(index int, quantity float64) {
	if index < 0 || index >= len(s.Cart) || quantity <= 0 {
		return
	}
	s.Cart[index].Quantity = quantity
}

// RemoveFromCart removes the cart line at a position; out-of-range
// indexes are tolerated as no-ops.
func (s *State) RemoveFromCart(index int) {
	if index < 0 || index >= len(s.Cart) {
		return
	}
	s.Cart = append(s.Cart[:index], s.Cart[index+1:]...)
}

// ToggleWishlist removes the product if present, adds it otherwise.
// The return reports whether the net effect was an addition.
func (s *State) ToggleWishlist(productID string) bool {
	for i, id := range s.Wishlist {
		if id == productID {
			s.Wishlist = append(s.Wishlist[:i], s.Wishlist[i+1:]...)
			return false
		}
	}
	s.Wishlist = append(s.Wishlist, productID)
	return true
}

// RemoveFromWishlist removes the entry at a position; out-of-range
// indexes are no-ops.
func (s *State) RemoveFromWishlist(index int) {
	if index < 0 || index >= len(s.Wishlist) {
		return
	}
	s.Wishlist = append(s.Wishlist[:index], s.Wishlist[index+1:]...)
}

func (s *State) ClearCart() {
	s.Cart = nil
}

func (s *State) ClearWishlist() {
	s.Wishlist = nil
}

// WishlistRefs converts the session wishlist to ObjectIDs for
// catalog lookups, dropping ids that do not parse.
func (s *State) WishlistRefs() []primitive.ObjectID {
	refs := make([]primitive.ObjectID, 0, len(s.Wishlist))
	for _, id := range s.Wishlist {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			refs = append(refs, oid)
		}
	}
	return refs
}

// CartRefs converts the session cart product ids to ObjectIDs for
// catalog lookups, dropping ids that do not parse.
func (s *State) CartRefs() []primitive.ObjectID {
	refs := make([]primitive.ObjectID, 0, len(s.Cart))
	for _, item := range s.Cart {
		if oid, err := primitive.ObjectIDFromHex(item.ProductID); err == nil {
			refs = append(refs, oid)
		}
	}
	return refs
}

// AddItem increments the quantity for a product already in the
// persisted cart, or appends a new line. The input is not modified.
func AddItem(cart []models.CartItem, productID primitive.ObjectID, quantity float64) []models.CartItem {
	out := make([]models.CartItem, len(cart))
	copy(out, cart)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity += quantity
			return out
		}
	}
	return append(out, models.CartItem{ProductID: productID, Quantity: quantity})
}

// SetQuantity replaces the quantity at a position of the persisted
// cart. Out-of-range indexes and non-positive quantities return the
// input unchanged.
func SetQuantity(cart []models.CartItem, index int, quantity float64) []models.CartItem {
	if index < 0 || index >= len(cart) || quantity <= 0 {
		return cart
	}
	out := make([]models.CartItem, len(cart))
	copy(out, cart)
	out[index].Quantity = quantity
	return out
}

// RemoveAt removes the persisted cart line at a position;
// out-of-range indexes return the input unchanged.
func RemoveAt(cart []models.CartItem, index int) []models.CartItem {
	if index < 0 || index >= len(cart) {
		return cart
	}
	out := make([]models.CartItem, 0, len(cart)-1)
	out = append(out, cart[:index]...)
	return append(out, cart[index+1:]...)
}

// Toggle removes the product from the persisted wishlist if present,
// appends it otherwise, and reports whether the net effect was an
// addition. The input is not modified.
func Toggle(wishlist []primitive.ObjectID, productID primitive.ObjectID) ([]primitive.ObjectID, bool) {
	key := productID.Hex()
	for i, id := range wishlist {
		if id.Hex() == key {
			out := make([]primitive.ObjectID, 0, len(wishlist)-1)
			out = append(out, wishlist[:i]...)
			return append(out, wishlist[i+1:]...), false
		}
	}
	out := make([]primitive.ObjectID, len(wishlist))
	copy(out, wishlist)
	return append(out, productID), true
}

// RemoveRefAt removes the persisted wishlist entry at a position;
// out-of-range indexes return the input unchanged.
func RemoveRefAt(wishlist []primitive.ObjectID, index int) []primitive.ObjectID {
	if index < 0 || index >= len(wishlist) {
		return wishlist
	}
	out := make([]primitive.ObjectID, 0, len(wishlist)-1)
	out = append(out, wishlist[:index]...)
	return append(out, wishlist[index+1:]...)
}
