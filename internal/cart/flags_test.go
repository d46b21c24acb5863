package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

func TestProjectForGuest(t *testing.T) {
	sess := &State{
		Cart:     []Item{{ProductID: p1.Hex(), Quantity: 1}},
		Wishlist: []string{p2.Hex()},
	}

	f := Project(p1, nil, sess)
	assert.True(t, f.InCart)
	assert.False(t, f.Wishlisted)

	f = Project(p2, nil, sess)
	assert.False(t, f.InCart)
	assert.True(t, f.Wishlisted)

	f = Project(p3, nil, sess)
	assert.Equal(t, Flags{}, f)
}

func TestProjectForUser(t *testing.T) {
	user := &models.User{
		Cart:     []models.CartItem{{ProductID: p1, Quantity: 2}},
		Wishlist: []primitive.ObjectID{p1, p3},
	}
	// A populated session must be ignored once a principal exists.
	sess := &State{Cart: []Item{{ProductID: p2.Hex(), Quantity: 1}}}

	f := Project(p1, user, sess)
	assert.True(t, f.InCart)
	assert.True(t, f.Wishlisted)

	f = Project(p2, user, sess)
	assert.Equal(t, Flags{}, f)

	f = Project(p3, user, sess)
	assert.False(t, f.InCart)
	assert.True(t, f.Wishlisted)
}
