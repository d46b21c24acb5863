package main

import (
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"freshcart/internal/models"
)

type productForm struct {
	Name        string  `schema:"name"`
	Price       float64 `schema:"price"`
	Images      string  `schema:"images"`
	Category    string  `schema:"category"`
	Description string  `schema:"description"`
	Features    string  `schema:"features"`
	Unit        string  `schema:"unit"`
}

type categoryForm struct {
	Name        string `schema:"name"`
	Parent      string `schema:"parent"`
	Image       string `schema:"image"`
	Description string `schema:"description"`
}

// splitList turns a comma-separated form field into a trimmed slice.
func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (f *productForm) toProduct() (*models.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(f.Category)
	if err != nil {
		return nil, err
	}
	unit := f.Unit
	if unit == "" {
		unit = "quantity"
	}
	return &models.Product{
		Name:        f.Name,
		Price:       f.Price,
		Images:      splitList(f.Images),
		CategoryID:  categoryID,
		Description: f.Description,
		Features:    splitList(f.Features),
		Unit:        unit,
	}, nil
}

func (app *application) adminDashboard(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.All()
	if err != nil {
		app.serverError(w, err)
		return
	}
	blogs, err := app.blogs.All()
	if err != nil {
		app.serverError(w, err)
		return
	}
	banners, err := app.banners.All()
	if err != nil {
		app.serverError(w, err)
		return
	}
	categories, err := app.categories.All()
	if err != nil {
		app.serverError(w, err)
		return
	}
	leaves, err := app.categories.Leaves()
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, r, "admin.page.tmpl", &TemplateData{
		Products:       app.projectFlags(r, products),
		Blogs:          blogs,
		Banners:        banners,
		Categories:     categories,
		LeafCategories: leaves,
	})
}

func (app *application) adminAddProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	var form productForm
	if err := app.formDecoder.Decode(&form, r.PostForm); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	product, err := form.toProduct()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	if err := app.products.Insert(product); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminEditProduct(w http.ResponseWriter, r *http.Request) {
	product, err := app.products.Get(r.URL.Query().Get(":id"))
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, err)
		return
	}
	leaves, err := app.categories.Leaves()
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "admin-edit-product.page.tmpl", &TemplateData{
		EditProduct:    product,
		LeafCategories: leaves,
	})
}

func (app *application) adminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	var form productForm
	if err := app.formDecoder.Decode(&form, r.PostForm); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	product, err := form.toProduct()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	if err := app.products.Update(id, product); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	if err := app.products.Delete(id); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminAddBlog(w http.ResponseWriter, r *http.Request) {
	blog := &models.Blog{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Image:   r.FormValue("image"),
	}
	if err := app.blogs.Insert(blog); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminDeleteBlog(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	if err := app.blogs.Delete(id); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminAddBanner(w http.ResponseWriter, r *http.Request) {
	banner := &models.Banner{
		Type:  r.FormValue("type"),
		Image: r.FormValue("image"),
		Title: r.FormValue("title"),
		Text:  r.FormValue("text"),
		Link:  r.FormValue("link"),
	}
	if err := app.banners.Insert(banner); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminDeleteBanner(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	if err := app.banners.Delete(id); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (f *categoryForm) toCategory() (*models.Category, error) {
	c := &models.Category{
		Name:        f.Name,
		Image:       f.Image,
		Description: f.Description,
	}
	if f.Parent != "" {
		parent, err := primitive.ObjectIDFromHex(f.Parent)
		if err != nil {
			return nil, err
		}
		c.Parent = parent
	}
	return c, nil
}

func (app *application) adminAddCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	var form categoryForm
	if err := app.formDecoder.Decode(&form, r.PostForm); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	category, err := form.toCategory()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	if err := app.categories.Insert(category); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminEditCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	category, err := app.categories.Get(id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.notFound(w)
			return
		}
		app.serverError(w, err)
		return
	}
	// Offer every other category as a possible parent.
	others, err := app.categories.AllExcept(id)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "admin-edit-category.page.tmpl", &TemplateData{
		EditCategory: category,
		Categories:   others,
	})
}

func (app *application) adminUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	var form categoryForm
	if err := app.formDecoder.Decode(&form, r.PostForm); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	category, err := form.toCategory()
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	if err := app.categories.Update(id, category); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (app *application) adminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.notFound(w)
		return
	}
	if err := app.categories.Delete(id); err != nil {
		app.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
