package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

const railSize = 15

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		app.notFound(w)
		return
	}

	bestSelling, err := app.products.BestSelling(railSize)
	if err != nil {
		app.serverError(w, err)
		return
	}
	featured, err := app.products.Featured(railSize)
	if err != nil {
		app.serverError(w, err)
		return
	}
	popular, err := app.products.Popular(railSize)
	if err != nil {
		app.serverError(w, err)
		return
	}
	newArrivals, err := app.products.NewArrivals(railSize)
	if err != nil {
		app.serverError(w, err)
		return
	}
	blogs, err := app.blogs.Latest(6)
	if err != nil {
		app.serverError(w, err)
		return
	}
	heroBanners, err := app.banners.ByType("hero")
	if err != nil {
		app.serverError(w, err)
		return
	}
	sideBanners, err := app.banners.ByType("side")
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "home.page.tmpl", &TemplateData{
		BestSelling: app.projectFlags(r, bestSelling),
		Featured:    app.projectFlags(r, featured),
		Popular:     app.projectFlags(r, popular),
		NewArrivals: app.projectFlags(r, newArrivals),
		Blogs:       blogs,
		HeroBanners: heroBanners,
		SideBanners: sideBanners,
	})
}

// productList drills into the category tree: a category with
// children renders a subcategory grid, a leaf renders its products,
// and no category at all renders the full catalog.
func (app *application) productList(w http.ResponseWriter, r *http.Request) {
	categoryHex := r.URL.Query().Get("category")

	allCategories, err := app.categories.All()
	if err != nil {
		app.serverError(w, err)
		return
	}

	td := &TemplateData{AllCategories: allCategories}
	var products []*models.Product

	if categoryHex != "" {
		categoryID, err := primitive.ObjectIDFromHex(categoryHex)
		if err != nil {
			app.notFound(w)
			return
		}
		current, err := app.categories.Get(categoryID)
		if err != nil {
			if errors.Is(err, models.ErrNoRecord) {
				app.notFound(w)
				return
			}
			app.serverError(w, err)
			return
		}
		subs, err := app.categories.Children(categoryID)
		if err != nil {
			app.serverError(w, err)
			return
		}

		td.CurrentCategory = current
		td.Subcategories = subs
		if len(subs) > 0 {
			td.IsSubcategoryView = true
		} else {
			products, err = app.products.ByCategory(categoryID)
			if err != nil {
				app.serverError(w, err)
				return
			}
		}
	} else {
		products, err = app.products.All()
		if err != nil {
			app.serverError(w, err)
			return
		}
		td.CurrentCategory = &models.Category{Name: "All Products"}
	}

	maxPrice, err := app.products.MaxPrice()
	if err != nil {
		app.serverError(w, err)
		return
	}

	td.Products = app.projectFlags(r, products)
	td.MaxPrice = maxPrice
	app.render(w, r, "products.page.tmpl", td)
}

func (app *application) productDetail(w http.ResponseWriter, r *http.Request) {
	product, err := app.products.Get(r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, err)
		return
	}

	related, err := app.products.Related(product, 6)
	if err != nil {
		app.serverError(w, err)
		return
	}

	views := app.projectFlags(r, []*models.Product{product})

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	app.render(w, r, "product.page.tmpl", &TemplateData{
		Product:    views[0],
		Related:    app.projectFlags(r, related),
		CurrentURL: fmt.Sprintf("%s://%s%s", scheme, r.Host, r.URL.RequestURI()),
	})
}

func (app *application) addReview(w http.ResponseWriter, r *http.Request) {
	idHex := r.URL.Query().Get(":id")
	product, err := app.products.Get(idHex)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			http.Redirect(w, r, "/products", http.StatusSeeOther)
			return
		}
		app.serverError(w, err)
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		app.flashError(r, "Rating must be between 1 and 5.")
		http.Redirect(w, r, "/product/"+idHex+"#reviews", http.StatusSeeOther)
		return
	}

	user := app.principal(r)
	added, err := app.products.AddReview(product.ID, models.Review{
		User:    user.Email,
		Comment: r.FormValue("comment"),
		Rating:  rating,
	})
	if err != nil {
		app.serverError(w, err)
		return
	}
	if !added {
		app.flashError(r, "You have already reviewed this product.")
	}

	http.Redirect(w, r, "/product/"+idHex+"#reviews", http.StatusSeeOther)
}

func (app *application) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	products, err := app.products.Search(query)
	if err != nil {
		app.serverError(w, err)
		return
	}
	blogs, err := app.blogs.Search(query)
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "search.page.tmpl", &TemplateData{
		SearchTerm: query,
		Products:   app.projectFlags(r, products),
		Blogs:      blogs,
	})
}

func (app *application) blogList(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogs.All()
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "blogs.page.tmpl", &TemplateData{Blogs: blogs})
}

func (app *application) categoryList(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "categories.page.tmpl", nil)
}

func (app *application) about(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "about.page.tmpl", nil)
}

func (app *application) contact(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "contact.page.tmpl", nil)
}

func (app *application) profile(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "profile.page.tmpl", &TemplateData{User: app.principal(r)})
}
