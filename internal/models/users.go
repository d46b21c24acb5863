package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type UserModel struct {
	C *mongo.Collection
}

func userCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// Insert creates a local-credential account with role "user" and
// empty cart/wishlist. Returns ErrDuplicateEmail if the email is
// already registered.
func (m *UserModel) Insert(email, password string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         RoleUser,
		Cart:         []CartItem{},
		Wishlist:     []primitive.ObjectID{},
		Created:      time.Now(),
	}

	ctx, cancel := userCtx()
	defer cancel()

	_, err = m.C.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a local email/password pair. A Google-only
// account (no password hash) yields ErrWrongAuthMethod so the login
// page can point the user at the Google button instead.
func (m *UserModel) Authenticate(email, password string) (*User, error) {
	ctx, cancel := userCtx()
	defer cancel()

	var user User
	err := m.C.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == "" {
		if user.GoogleID != "" {
			return nil, ErrWrongAuthMethod
		}
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return &user, nil
}

// AuthenticateAdmin is Authenticate plus a role check. Every failure
// mode collapses to ErrInvalidCredentials so the admin form reveals
// nothing beyond "invalid admin credentials".
func (m *UserModel) AuthenticateAdmin(email, password string) (*User, error) {
	user, err := m.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, ErrWrongAuthMethod) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Role != RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (m *UserModel) Get(id primitive.ObjectID) (*User, error) {
	ctx, cancel := userCtx()
	defer cancel()

	var user User
	err := m.C.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return &user, nil
}

// UpsertGoogle resolves a Google sign-in to exactly one account.
// Lookup order: by google_id, then by verified email (linking the
// google_id onto an existing local account), then a fresh account
// with no password hash. The email match is what keeps a user who
// signed up locally first from ending up with two accounts.
func (m *UserModel) UpsertGoogle(googleID, email string) (*User, error) {
	ctx, cancel := userCtx()
	defer cancel()

	var user User
	err := m.C.FindOne(ctx, bson.M{"google_id": googleID}).Decode(&user)
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	err = m.C.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == nil {
		_, err = m.C.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"google_id": googleID}})
		if err != nil {
			return nil, err
		}
		user.GoogleID = googleID
		return &user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	user = User{
		ID:       primitive.NewObjectID(),
		Email:    email,
		GoogleID: googleID,
		Role:     RoleUser,
		Cart:     []CartItem{},
		Wishlist: []primitive.ObjectID{},
		Created:  time.Now(),
	}
	_, err = m.C.InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveCartAndWishlist writes both collections in a single update,
// which is the one save the reconciliation step performs.
func (m *UserModel) SaveCartAndWishlist(id primitive.ObjectID, cart []CartItem, wishlist []primitive.ObjectID) error {
	ctx, cancel := userCtx()
	defer cancel()

	_, err := m.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"cart":     cart,
		"wishlist": wishlist,
	}})
	return err
}

func (m *UserModel) UpdateCart(id primitive.ObjectID, cart []CartItem) error {
	ctx, cancel := userCtx()
	defer cancel()

	_, err := m.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"cart": cart}})
	return err
}

func (m *UserModel) UpdateWishlist(id primitive.ObjectID, wishlist []primitive.ObjectID) error {
	ctx, cancel := userCtx()
	defer cancel()

	_, err := m.C.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"wishlist": wishlist}})
	return err
}
