package main

import (
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/cart"
	"freshcart/internal/models"
)

// parseQuantity applies the add-to-cart boundary rule: anything that
// is not a positive number falls back to 1.
func parseQuantity(raw string) float64 {
	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || qty <= 0 {
		return 1
	}
	return qty
}

func (app *application) cartAdd(w http.ResponseWriter, r *http.Request) {
	idHex := r.URL.Query().Get(":id")
	quantity := parseQuantity(r.FormValue("quantity"))

	product, err := app.products.Get(idHex)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			// Unknown products are silently ignored.
			redirectBack(w, r, "/cart")
			return
		}
		app.serverError(w, err)
		return
	}

	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			u.Cart = cart.AddItem(u.Cart, product.ID, quantity)
			return app.users.UpdateCart(u.ID, u.Cart)
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		sess.AddToCart(product.ID.Hex(), quantity)
		app.putSessionState(r, sess)
	}

	if isXHR(r) {
		app.writeJSON(w, map[string]bool{"success": true})
		return
	}
	redirectBack(w, r, "/cart")
}

func (app *application) cartPage(w http.ResponseWriter, r *http.Request) {
	var lines []*cartLine

	if user := app.principal(r); user != nil {
		ids := make([]primitive.ObjectID, len(user.Cart))
		for i, item := range user.Cart {
			ids[i] = item.ProductID
		}
		byID, err := app.productsByID(ids)
		if err != nil {
			app.serverError(w, err)
			return
		}
		for _, item := range user.Cart {
			if p, ok := byID[item.ProductID.Hex()]; ok {
				lines = append(lines, &cartLine{Product: p, Quantity: item.Quantity})
			}
		}
	} else {
		sess := app.sessionState(r)
		byID, err := app.productsByID(sess.CartRefs())
		if err != nil {
			app.serverError(w, err)
			return
		}
		for _, item := range sess.Cart {
			if p, ok := byID[item.ProductID]; ok {
				lines = append(lines, &cartLine{Product: p, Quantity: item.Quantity})
			}
		}
	}

	app.render(w, r, "cart.page.tmpl", &TemplateData{Cart: lines})
}

// productsByID resolves a set of references to a hex-keyed lookup
// table. Dangling references simply have no entry, so callers drop
// them from the render.
func (app *application) productsByID(ids []primitive.ObjectID) (map[string]*models.Product, error) {
	products, err := app.products.ByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Product, len(products))
	for _, p := range products {
		byID[p.ID.Hex()] = p
	}
	return byID, nil
}

func (app *application) cartUpdate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get(":index"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	quantity, err := strconv.ParseFloat(r.FormValue("quantity"), 64)
	if err != nil || quantity <= 0 {
		// Updates reject bad quantities outright, unlike adds.
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			u.Cart = cart.SetQuantity(u.Cart, index, quantity)
			return app.users.UpdateCart(u.ID, u.Cart)
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		sess.SetQuantity(index, quantity)
		app.putSessionState(r, sess)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) cartRemove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get(":index"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			u.Cart = cart.RemoveAt(u.Cart, index)
			return app.users.UpdateCart(u.ID, u.Cart)
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		sess.RemoveFromCart(index)
		app.putSessionState(r, sess)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (app *application) cartClear(w http.ResponseWriter, r *http.Request) {
	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			return app.users.UpdateCart(u.ID, []models.CartItem{})
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		sess.ClearCart()
		app.putSessionState(r, sess)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// wishlistToggle adds the product if absent and removes it if
// present, reporting the net effect for the client-side icon. The id
// is parsed up front so the guest session stores the canonical
// lowercase hex, never the raw URL parameter.
func (app *application) wishlistToggle(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	var added bool
	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			u.Wishlist, added = cart.Toggle(u.Wishlist, productID)
			return app.users.UpdateWishlist(u.ID, u.Wishlist)
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		added = sess.ToggleWishlist(productID.Hex())
		app.putSessionState(r, sess)
	}

	if isXHR(r) {
		app.writeJSON(w, map[string]bool{"added": added})
		return
	}
	redirectBack(w, r, "/wishlist")
}

func (app *application) wishlistPage(w http.ResponseWriter, r *http.Request) {
	var refs []primitive.ObjectID
	if user := app.principal(r); user != nil {
		refs = user.Wishlist
	} else {
		refs = app.sessionState(r).WishlistRefs()
	}

	products, err := app.products.ByIDs(refs)
	if err != nil {
		app.serverError(w, err)
		return
	}

	views := app.projectFlags(r, products)
	for _, v := range views {
		v.Wishlisted = true
	}

	app.render(w, r, "wishlist.page.tmpl", &TemplateData{Wishlist: views})
}

func (app *application) wishlistRemove(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get(":index"))
	if err != nil {
		http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
		return
	}

	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			u.Wishlist = cart.RemoveRefAt(u.Wishlist, index)
			return app.users.UpdateWishlist(u.ID, u.Wishlist)
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		sess.RemoveFromWishlist(index)
		app.putSessionState(r, sess)
	}

	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}

func (app *application) wishlistClear(w http.ResponseWriter, r *http.Request) {
	if user := app.principal(r); user != nil {
		err := app.mutateUser(user.ID, func(u *models.User) error {
			return app.users.UpdateWishlist(u.ID, []primitive.ObjectID{})
		})
		if err != nil {
			app.serverError(w, err)
			return
		}
	} else {
		sess := app.sessionState(r)
		sess.ClearWishlist()
		app.putSessionState(r, sess)
	}

	http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
}
