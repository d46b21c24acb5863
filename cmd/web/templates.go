package main

import (
	"html/template"
	"path/filepath"
	"time"

	"freshcart/internal/cart"
	"freshcart/internal/models"
)

// productView is a product with its per-request cart/wishlist badges.
type productView struct {
	*models.Product
	cart.Flags
}

// cartLine is one resolved row of the cart page.
type cartLine struct {
	*models.Product
	Quantity float64
}

func (l *cartLine) LineTotal() float64 {
	return l.Price * l.Quantity
}

type TemplateData struct {
	CurrentYear      int
	IsAuthenticated  bool
	IsAdmin          bool
	UserEmail        string
	Error            string
	NestedCategories []*models.CategoryNode

	BestSelling []*productView
	Featured    []*productView
	Popular     []*productView
	NewArrivals []*productView
	Products    []*productView
	Product     *productView
	Related     []*productView
	Wishlist    []*productView
	Cart        []*cartLine

	Blogs       []*models.Blog
	HeroBanners []*models.Banner
	SideBanners []*models.Banner
	Banners     []*models.Banner

	Categories        []*models.Category
	AllCategories     []*models.Category
	LeafCategories    []*models.Category
	Subcategories     []*models.Category
	CurrentCategory   *models.Category
	IsSubcategoryView bool
	EditCategory      *models.Category
	EditProduct       *models.Product

	SearchTerm string
	MaxPrice   float64
	CurrentURL string
	User       *models.User
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006 at 15:04")
}

var functions = template.FuncMap{
	"humanDate": humanDate,
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := make(map[string]*template.Template)

	pages, err := filepath.Glob("./ui/html/*.page.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFiles("./ui/html/base.layout.tmpl")
		if err != nil {
			return nil, err
		}

		partials, err := filepath.Glob("./ui/html/*.partial.tmpl")
		if err != nil {
			return nil, err
		}
		if len(partials) > 0 {
			ts, err = ts.ParseGlob("./ui/html/*.partial.tmpl")
			if err != nil {
				return nil, err
			}
		}

		ts, err = ts.ParseFiles(page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
