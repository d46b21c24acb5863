package main

import (
	"net/http"

	"github.com/bmizerany/pat"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Get("/", http.HandlerFunc(app.home))
	mux.Get("/products", http.HandlerFunc(app.productList))
	mux.Get("/product/:id", http.HandlerFunc(app.productDetail))
	mux.Post("/product/:id/review", app.requireAuthentication(http.HandlerFunc(app.addReview)))
	mux.Get("/search", http.HandlerFunc(app.search))
	mux.Get("/blogs", http.HandlerFunc(app.blogList))
	mux.Get("/categories", http.HandlerFunc(app.categoryList))
	mux.Get("/about", http.HandlerFunc(app.about))
	mux.Get("/contact", http.HandlerFunc(app.contact))
	mux.Get("/profile", app.requireAuthentication(http.HandlerFunc(app.profile)))

	mux.Get("/login", http.HandlerFunc(app.loginForm))
	mux.Post("/login", http.HandlerFunc(app.login))
	mux.Get("/signup", http.HandlerFunc(app.signupForm))
	mux.Post("/signup", http.HandlerFunc(app.signup))
	mux.Get("/logout", http.HandlerFunc(app.logout))
	mux.Get("/auth/google", http.HandlerFunc(app.googleLogin))
	mux.Get("/auth/google/callback", http.HandlerFunc(app.googleCallback))

	mux.Post("/cart/add/:id", http.HandlerFunc(app.cartAdd))
	mux.Get("/cart", http.HandlerFunc(app.cartPage))
	mux.Post("/cart/update/:index", http.HandlerFunc(app.cartUpdate))
	mux.Post("/cart/remove/:index", http.HandlerFunc(app.cartRemove))
	mux.Get("/cart/clear", http.HandlerFunc(app.cartClear))

	mux.Post("/wishlist/add/:id", http.HandlerFunc(app.wishlistToggle))
	mux.Get("/wishlist", http.HandlerFunc(app.wishlistPage))
	mux.Post("/wishlist/remove/:index", http.HandlerFunc(app.wishlistRemove))
	mux.Get("/wishlist/clear", http.HandlerFunc(app.wishlistClear))

	mux.Get("/admin/login", http.HandlerFunc(app.adminLoginForm))
	mux.Post("/admin/login", http.HandlerFunc(app.adminLogin))
	mux.Get("/admin", app.requireAdmin(http.HandlerFunc(app.adminDashboard)))
	mux.Post("/admin/add", app.requireAdmin(http.HandlerFunc(app.adminAddProduct)))
	mux.Get("/admin/edit/:id", app.requireAdmin(http.HandlerFunc(app.adminEditProduct)))
	mux.Post("/admin/update/:id", app.requireAdmin(http.HandlerFunc(app.adminUpdateProduct)))
	mux.Get("/admin/delete/:id", app.requireAdmin(http.HandlerFunc(app.adminDeleteProduct)))
	mux.Post("/admin/add-blog", app.requireAdmin(http.HandlerFunc(app.adminAddBlog)))
	mux.Get("/admin/delete-blog/:id", app.requireAdmin(http.HandlerFunc(app.adminDeleteBlog)))
	mux.Post("/admin/add-banner", app.requireAdmin(http.HandlerFunc(app.adminAddBanner)))
	mux.Get("/admin/delete-banner/:id", app.requireAdmin(http.HandlerFunc(app.adminDeleteBanner)))
	mux.Post("/admin/add-category", app.requireAdmin(http.HandlerFunc(app.adminAddCategory)))
	mux.Get("/admin/edit-category/:id", app.requireAdmin(http.HandlerFunc(app.adminEditCategory)))
	mux.Post("/admin/update-category/:id", app.requireAdmin(http.HandlerFunc(app.adminUpdateCategory)))
	mux.Get("/admin/delete-category/:id", app.requireAdmin(http.HandlerFunc(app.adminDeleteCategory)))

	fileServer := http.FileServer(http.Dir("./ui/static/"))
	mux.Get("/static/", http.StripPrefix("/static", fileServer))

	return app.recoverPanic(app.logRequest(secureHeaders(app.session.LoadAndSave(app.authenticate(mux)))))
}
