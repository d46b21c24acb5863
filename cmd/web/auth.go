package main

import (
	"errors"
	"net/http"

	"freshcart/internal/models"
)

func (app *application) loginForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "login.page.tmpl", nil)
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := app.users.Authenticate(email, password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWrongAuthMethod):
			app.flashError(r, "Please login with Google")
		case errors.Is(err, models.ErrInvalidCredentials):
			app.flashError(r, "Invalid email or password")
		default:
			app.serverError(w, err)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := app.establishSession(r, user); err != nil {
		app.serverError(w, err)
		return
	}

	redirectTo := app.session.PopString(r.Context(), sessionKeyReturnTo)
	if redirectTo == "" {
		redirectTo = "/"
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

func (app *application) signupForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "signup.page.tmpl", nil)
}

func (app *application) signup(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirmPassword")

	if password != confirm {
		app.flashError(r, "Passwords do not match")
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	user, err := app.users.Insert(email, password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			app.flashError(r, "User already exists")
			http.Redirect(w, r, "/signup", http.StatusSeeOther)
			return
		}
		app.serverError(w, err)
		return
	}

	if err := app.establishSession(r, user); err != nil {
		app.serverError(w, err)
		return
	}

	redirectTo := app.session.PopString(r.Context(), sessionKeyReturnTo)
	if redirectTo == "" {
		redirectTo = "/"
	}
	http.Redirect(w, r, redirectTo, http.StatusSeeOther)
}

func (app *application) adminLoginForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "admin-login.page.tmpl", nil)
}

func (app *application) adminLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := app.users.AuthenticateAdmin(email, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			app.flashError(r, "Invalid admin credentials")
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		app.serverError(w, err)
		return
	}

	if err := app.establishSession(r, user); err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.session.Destroy(r.Context()); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// establishSession turns the current anonymous session into an
// authenticated one: the token is renewed against fixation, the
// anonymous cart/wishlist are reconciled into the user document, and
// only then is the principal recorded. A failed merge leaves the
// visitor anonymous with the session containers intact, so nothing
// is lost.
func (app *application) establishSession(r *http.Request, user *models.User) error {
	if err := app.session.RenewToken(r.Context()); err != nil {
		return err
	}
	if err := app.mergeSessionState(r, user.ID); err != nil {
		return err
	}
	app.session.Put(r.Context(), sessionKeyUserID, user.ID.Hex())
	return nil
}
