package cart

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

// MergeCart folds the anonymous session cart into the persisted one.
// Quantities for a product present on both sides are summed, never
// overwritten: a partial add before login and another after must end
// up as one line with the total. Session-only products are appended
// in first-seen order. Ids that do not parse as ObjectID hex have no
// persisted representation and are dropped; ids absent from the
// catalog are carried through uncritically, display filters them.
// Neither input is modified.
func MergeCart(persisted []models.CartItem, session []Item) []models.CartItem {
	merged := make([]models.CartItem, len(persisted))
	copy(merged, persisted)

	index := make(map[string]int, len(merged))
	for i, item := range merged {
		index[item.ProductID.Hex()] = i
	}

	for _, item := range session {
		oid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			continue
		}
		// Key on the parsed id's hex, not the raw session string:
		// ObjectIDFromHex accepts uppercase input, Hex emits lowercase.
		key := oid.Hex()
		if i, ok := index[key]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, models.CartItem{ProductID: oid, Quantity: item.Quantity})
	}
	return merged
}

// MergeWishlist folds the anonymous session wishlist into the
// persisted one as a set union: persisted entries keep their order,
// session entries not already present follow in first-seen order.
// Neither input is modified.
func MergeWishlist(persisted []primitive.ObjectID, session []string) []primitive.ObjectID {
	merged := make([]primitive.ObjectID, len(persisted))
	copy(merged, persisted)

	seen := make(map[string]bool, len(merged))
	for _, id := range merged {
		seen[id.Hex()] = true
	}

	for _, id := range session {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		key := oid.Hex()
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, oid)
	}
	return merged
}

// Reconcile merges the anonymous session state into the user's
// persisted cart and wishlist and saves the user through save. The
// session state is cleared only after save reports success; on
// failure it is left exactly as it was, so nothing is lost when the
// store is unreachable.
//
// Running the merge twice would double-count cart quantities, so
// callers invoke Reconcile exactly once per authentication
// transition (login, signup, Google callback) and must write the
// cleared state back to the session afterwards.
func Reconcile(user *models.User, sess *State, save func(*models.User) error) error {
	if sess.Empty() {
		return nil
	}

	user.Cart = MergeCart(user.Cart, sess.Cart)
	user.Wishlist = MergeWishlist(user.Wishlist, sess.Wishlist)

	if err := save(user); err != nil {
		return err
	}
	sess.Clear()
	return nil
}
