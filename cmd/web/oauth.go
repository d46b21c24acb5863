package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// googleProfile is the slice of the userinfo response the account
// resolution needs: the stable subject id and the verified email.
type googleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
}

func (app *application) googleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	app.session.Put(r.Context(), sessionKeyOAuthState, state)
	http.Redirect(w, r, app.google.AuthCodeURL(state), http.StatusSeeOther)
}

func (app *application) googleCallback(w http.ResponseWriter, r *http.Request) {
	state := app.session.PopString(r.Context(), sessionKeyOAuthState)
	if state == "" || state != r.URL.Query().Get("state") {
		app.flashError(r, "Google login failed. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		app.flashError(r, "Google login failed. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := app.google.Exchange(r.Context(), code)
	if err != nil {
		app.flashError(r, "Google login failed. Please try again.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	profile, err := app.fetchGoogleProfile(r.Context(), token)
	if err != nil {
		app.serverError(w, err)
		return
	}

	user, err := app.users.UpsertGoogle(profile.ID, profile.Email)
	if err != nil {
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

func (app *application) fetchGoogleProfile(ctx context.Context, token *oauth2.Token) (*googleProfile, error) {
	client := app.google.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %s", resp.Status)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Email == "" || !profile.VerifiedEmail {
		return nil, fmt.Errorf("google profile %s has no verified email", profile.ID)
	}
	return &profile, nil
}
