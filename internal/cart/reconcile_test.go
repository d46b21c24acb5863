package cart

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

var (
	p1 = primitive.NewObjectID()
	p2 = primitive.NewObjectID()
	p3 = primitive.NewObjectID()
)

func TestMergeCartSumsQuantities(t *testing.T) {
	persisted := []models.CartItem{{ProductID: p1, Quantity: 2}}
	session := []Item{
		{ProductID: p1.Hex(), Quantity: 3},
		{ProductID: p2.Hex(), Quantity: 1},
	}

	merged := MergeCart(persisted, session)

	require.Len(t, merged, 2)
	assert.Equal(t, p1, merged[0].ProductID)
	assert.Equal(t, 5.0, merged[0].Quantity)
	assert.Equal(t, p2, merged[1].ProductID)
	assert.Equal(t, 1.0, merged[1].Quantity)
}

func TestMergeCartNoDuplicateEntries(t *testing.T) {
	session := []Item{
		{ProductID: p1.Hex(), Quantity: 1},
		{ProductID: p1.Hex(), Quantity: 2},
	}

	merged := MergeCart(nil, session)

	require.Len(t, merged, 1)
	assert.Equal(t, 3.0, merged[0].Quantity)
}

func TestMergeCartCrossRepresentationIdentity(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("507f191e810c19729de860ea")
	require.NoError(t, err)

	persisted := []models.CartItem{{ProductID: oid, Quantity: 1}}
	session := []Item{{ProductID: "507f191e810c19729de860ea", Quantity: 4}}

	merged := MergeCart(persisted, session)

	require.Len(t, merged, 1)
	assert.Equal(t, 5.0, merged[0].Quantity)
}

func TestMergeCartNormalizesHexCase(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("507f191e810c19729de860ea")
	require.NoError(t, err)

	persisted := []models.CartItem{{ProductID: oid, Quantity: 1}}
	session := []Item{{ProductID: "507F191E810C19729DE860EA", Quantity: 4}}

	merged := MergeCart(persisted, session)

	require.Len(t, merged, 1)
	assert.Equal(t, 5.0, merged[0].Quantity)
}

func TestMergeCartDropsUnparseableIDs(t *testing.T) {
	session := []Item{
		{ProductID: "not-an-object-id", Quantity: 2},
		{ProductID: p1.Hex(), Quantity: 1},
	}

	merged := MergeCart(nil, session)

	require.Len(t, merged, 1)
	assert.Equal(t, p1, merged[0].ProductID)
}

func TestMergeCartDoesNotMutateInputs(t *testing.T) {
	persisted := []models.CartItem{{ProductID: p1, Quantity: 2}}
	session := []Item{{ProductID: p1.Hex(), Quantity: 3}}

	MergeCart(persisted, session)

	assert.Equal(t, 2.0, persisted[0].Quantity)
	assert.Equal(t, 3.0, session[0].Quantity)
}

func TestMergeWishlistIsSetUnion(t *testing.T) {
	persisted := []primitive.ObjectID{p1}
	session := []string{p1.Hex(), p2.Hex(), p2.Hex(), p3.Hex()}

	merged := MergeWishlist(persisted, session)

	// Persisted order first, then session ids in first-seen order.
	assert.Equal(t, []primitive.ObjectID{p1, p2, p3}, merged)
}

func TestMergeWishlistNormalizesHexCase(t *testing.T) {
	persisted := []primitive.ObjectID{p1}
	session := []string{strings.ToUpper(p1.Hex()), strings.ToUpper(p2.Hex()), p2.Hex()}

	merged := MergeWishlist(persisted, session)

	assert.Equal(t, []primitive.ObjectID{p1, p2}, merged)
}

func TestMergeWishlistDoesNotMutateInputs(t *testing.T) {
	persisted := []primitive.ObjectID{p1}
	session := []string{p2.Hex()}

	MergeWishlist(persisted, session)

	assert.Equal(t, []primitive.ObjectID{p1}, persisted)
	assert.Equal(t, []string{p2.Hex()}, session)
}

func TestReconcileClearsSessionAfterSave(t *testing.T) {
	user := &models.User{
		Cart:     []models.CartItem{{ProductID: p1, Quantity: 2}},
		Wishlist: []primitive.ObjectID{p1},
	}
	sess := &State{
		Cart:     []Item{{ProductID: p1.Hex(), Quantity: 3}, {ProductID: p2.Hex(), Quantity: 1}},
		Wishlist: []string{p1.Hex(), p2.Hex()},
	}

	saves := 0
	err := Reconcile(user, sess, func(u *models.User) error {
		saves++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, saves)
	assert.True(t, sess.Empty())
	require.Len(t, user.Cart, 2)
	assert.Equal(t, 5.0, user.Cart[0].Quantity)
	assert.Equal(t, []primitive.ObjectID{p1, p2}, user.Wishlist)
}

func TestReconcileKeepsSessionOnSaveFailure(t *testing.T) {
	user := &models.User{}
	sess := &State{
		Cart:     []Item{{ProductID: p1.Hex(), Quantity: 3}},
		Wishlist: []string{p2.Hex()},
	}

	err := Reconcile(user, sess, func(u *models.User) error {
		return errors.New("store unreachable")
	})

	require.Error(t, err)
	assert.Equal(t, []Item{{ProductID: p1.Hex(), Quantity: 3}}, sess.Cart)
	assert.Equal(t, []string{p2.Hex()}, sess.Wishlist)
}

func TestReconcileSkipsSaveForEmptySession(t *testing.T) {
	user := &models.User{Cart: []models.CartItem{{ProductID: p1, Quantity: 1}}}
	sess := &State{}

	err := Reconcile(user, sess, func(u *models.User) error {
		t.Fatal("save called for an empty session")
		return nil
	})

	require.NoError(t, err)
	assert.Len(t, user.Cart, 1)
}
