package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

func TestStateAddToCart(t *testing.T) {
	s := &State{}

	s.AddToCart(p1.Hex(), 1)
	s.AddToCart(p2.Hex(), 2)
	s.AddToCart(p1.Hex(), 1.5)

	require.Len(t, s.Cart, 2)
	assert.Equal(t, 2.5, s.Cart[0].Quantity)
	assert.Equal(t, 2.0, s.Cart[1].Quantity)
}

func TestStateSetQuantity(t *testing.T) {
	s := &State{Cart: []Item{{ProductID: p1.Hex(), Quantity: 1}}}

	s.SetQuantity(0, 4)
	assert.Equal(t, 4.0, s.Cart[0].Quantity)

	s.SetQuantity(0, 0)
	assert.Equal(t, 4.0, s.Cart[0].Quantity, "non-positive quantity is rejected")

	s.SetQuantity(5, 2)
	assert.Equal(t, 4.0, s.Cart[0].Quantity, "out-of-range index is a no-op")
}

func TestStateRemoveFromCartOutOfRange(t *testing.T) {
	s := &State{Cart: []Item{{ProductID: p1.Hex(), Quantity: 1}}}

	s.RemoveFromCart(3)
	s.RemoveFromCart(-1)
	assert.Len(t, s.Cart, 1)

	s.RemoveFromCart(0)
	assert.Empty(t, s.Cart)
}

func TestStateToggleWishlistRoundTrip(t *testing.T) {
	s := &State{}

	added := s.ToggleWishlist(p1.Hex())
	assert.True(t, added)
	assert.Equal(t, []string{p1.Hex()}, s.Wishlist)

	added = s.ToggleWishlist(p1.Hex())
	assert.False(t, added, "second toggle reports a removal")
	assert.Empty(t, s.Wishlist)
}

func TestStateToggleWishlistMixedCaseInput(t *testing.T) {
	// Handlers parse the URL id and store oid.Hex(), so an uppercase
	// id toggles the same entry it added.
	oid, err := primitive.ObjectIDFromHex("507F191E810C19729DE860EA")
	require.NoError(t, err)

	s := &State{}

	added := s.ToggleWishlist(oid.Hex())
	assert.True(t, added)
	assert.Equal(t, []string{"507f191e810c19729de860ea"}, s.Wishlist)

	added = s.ToggleWishlist(oid.Hex())
	assert.False(t, added)
	assert.Empty(t, s.Wishlist)
}

func TestStateRemoveFromWishlist(t *testing.T) {
	s := &State{Wishlist: []string{p1.Hex(), p2.Hex()}}

	s.RemoveFromWishlist(9)
	assert.Len(t, s.Wishlist, 2)

	s.RemoveFromWishlist(0)
	assert.Equal(t, []string{p2.Hex()}, s.Wishlist)
}

func TestStateRefsDropUnparseableIDs(t *testing.T) {
	s := &State{
		Cart:     []Item{{ProductID: "bogus", Quantity: 1}, {ProductID: p1.Hex(), Quantity: 1}},
		Wishlist: []string{"bogus", p2.Hex()},
	}

	assert.Equal(t, []primitive.ObjectID{p1}, s.CartRefs())
	assert.Equal(t, []primitive.ObjectID{p2}, s.WishlistRefs())
}

func TestAddItem(t *testing.T) {
	cart := []models.CartItem{{ProductID: p1, Quantity: 2}}

	got := AddItem(cart, p1, 3)
	require.Len(t, got, 1)
	assert.Equal(t, 5.0, got[0].Quantity)
	assert.Equal(t, 2.0, cart[0].Quantity, "input is not modified")

	got = AddItem(cart, p2, 1)
	require.Len(t, got, 2)
	assert.Equal(t, p2, got[1].ProductID)
}

func TestSetQuantity(t *testing.T) {
	cart := []models.CartItem{{ProductID: p1, Quantity: 2}}

	got := SetQuantity(cart, 0, 7)
	assert.Equal(t, 7.0, got[0].Quantity)
	assert.Equal(t, 2.0, cart[0].Quantity)

	assert.Equal(t, cart, SetQuantity(cart, 0, -1))
	assert.Equal(t, cart, SetQuantity(cart, 8, 3))
}

func TestRemoveAt(t *testing.T) {
	cart := []models.CartItem{
		{ProductID: p1, Quantity: 1},
		{ProductID: p2, Quantity: 2},
	}

	got := RemoveAt(cart, 0)
	require.Len(t, got, 1)
	assert.Equal(t, p2, got[0].ProductID)
	assert.Len(t, cart, 2, "input is not modified")

	assert.Equal(t, cart, RemoveAt(cart, 5))
}

func TestToggleRoundTrip(t *testing.T) {
	wishlist := []primitive.ObjectID{}

	wishlist, added := Toggle(wishlist, p1)
	assert.True(t, added)
	require.Len(t, wishlist, 1)

	wishlist, added = Toggle(wishlist, p1)
	assert.False(t, added)
	assert.Empty(t, wishlist)
}

func TestRemoveRefAt(t *testing.T) {
	wishlist := []primitive.ObjectID{p1, p2}

	got := RemoveRefAt(wishlist, 1)
	assert.Equal(t, []primitive.ObjectID{p1}, got)
	assert.Len(t, wishlist, 2)

	assert.Equal(t, wishlist, RemoveRefAt(wishlist, -2))
}
