package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/cart"
	"freshcart/internal/models"
)

// Session keys. The cart and wishlist keys hold the anonymous
// containers; error is a one-shot flash, returnTo a one-shot
// post-login redirect target.
const (
	sessionKeyUserID     = "authenticatedUserID"
	sessionKeyCart       = "cart"
	sessionKeyWishlist   = "wishlist"
	sessionKeyError      = "error"
	sessionKeyReturnTo   = "returnTo"
	sessionKeyOAuthState = "oauthState"
)

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

func (app *application) notFound(w http.ResponseWriter) {
	app.clientError(w, http.StatusNotFound)
}

// principal returns the authenticated user attached by the
// authenticate middleware, or nil for anonymous requests.
func (app *application) principal(r *http.Request) *models.User {
	user, ok := r.Context().Value(contextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func (app *application) isAuthenticated(r *http.Request) bool {
	return app.principal(r) != nil
}

// sessionState snapshots the anonymous cart/wishlist containers out
// of the session. Mutations happen on the snapshot and are written
// back with putSessionState.
func (app *application) sessionState(r *http.Request) *cart.State {
	s := &cart.State{}
	if items, ok := app.session.Get(r.Context(), sessionKeyCart).([]cart.Item); ok {
		s.Cart = items
	}
	if ids, ok := app.session.Get(r.Context(), sessionKeyWishlist).([]string); ok {
		s.Wishlist = ids
	}
	return s
}

func (app *application) putSessionState(r *http.Request, s *cart.State) {
	app.session.Put(r.Context(), sessionKeyCart, s.Cart)
	app.session.Put(r.Context(), sessionKeyWishlist, s.Wishlist)
}

func (app *application) flashError(r *http.Request, msg string) {
	app.session.Put(r.Context(), sessionKeyError, msg)
}

// isXHR mirrors the convention the storefront javascript uses when
// calling the cart/wishlist endpoints.
func isXHR(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func (app *application) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.errorLog.Println(err)
	}
}

// redirectBack sends the browser to the page it came from, falling
// back when no referer is present.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := r.Header.Get("Referer")
	if target == "" {
		target = fallback
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (app *application) addDefaultData(td *TemplateData, r *http.Request) *TemplateData {
	if td == nil {
		td = &TemplateData{}
	}
	td.CurrentYear = time.Now().Year()
	td.Error = app.session.PopString(r.Context(), sessionKeyError)

	if user := app.principal(r); user != nil {
		td.IsAuthenticated = true
		td.IsAdmin = user.Role == models.RoleAdmin
		td.UserEmail = user.Email
	}

	nested, err := app.categories.Nested()
	if err != nil {
		app.errorLog.Println(err)
	}
	td.NestedCategories = nested
	return td
}

func (app *application) render(w http.ResponseWriter, r *http.Request, page string, data *TemplateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverError(w, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	err := ts.ExecuteTemplate(buf, "base", app.addDefaultData(data, r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// projectFlags attaches the in-cart/wishlisted badges to a product
// list from whichever store is authoritative for the request.
func (app *application) projectFlags(r *http.Request, products []*models.Product) []*productView {
	user := app.principal(r)
	sess := app.sessionState(r)

	views := make([]*productView, len(products))
	for i, p := range products {
		views[i] = &productView{Product: p, Flags: cart.Project(p.ID, user, sess)}
	}
	return views
}

// mutateUser runs a read-modify-write of one user document under
// that user's lock, so concurrent tabs cannot overwrite each other's
// cart updates.
func (app *application) mutateUser(userID primitive.ObjectID, fn func(*models.User) error) error {
	unlock := app.lockUser(userID.Hex())
	defer unlock()

	user, err := app.users.Get(userID)
	if err != nil {
		return err
	}
	return fn(user)
}

// mergeSessionState reconciles the anonymous containers into the
// user's persisted cart and wishlist. Called exactly once per
// authentication transition; the session containers are cleared only
// after the save is confirmed, and are left untouched on failure.
func (app *application) mergeSessionState(r *http.Request, userID primitive.ObjectID) error {
	sess := app.sessionState(r)
	if sess.Empty() {
		return nil
	}

	err := app.mutateUser(userID, func(user *models.User) error {
		return cart.Reconcile(user, sess, func(u *models.User) error {
			return app.users.SaveCartAndWishlist(u.ID, u.Cart, u.Wishlist)
		})
	})
	if err != nil {
		return err
	}

	app.putSessionState(r, sess)
	return nil
}
