package main

import (
	"context"
	"encoding/gob"
	"flag"
	"html/template"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/alexedwards/scs/mongodbstore"
	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/schema"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"freshcart/internal/cart"
	"freshcart/internal/models"
)

type application struct {
	errorLog      *log.Logger
	infoLog       *log.Logger
	session       *scs.SessionManager
	templateCache map[string]*template.Template
	formDecoder   *schema.Decoder
	google        *oauth2.Config

	users      *models.UserModel
	products   *models.ProductModel
	categories *models.CategoryModel
	blogs      *models.BlogModel
	banners    *models.BannerModel

	// userLocks serializes persisted cart/wishlist mutations per
	// user id; see locks.go.
	userLocks struct {
		mu    sync.Mutex
		locks map[string]*sync.Mutex
	}
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	addr := flag.String("addr", ":4000", "HTTP network address")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "freshcart"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		errorLog.Fatal(err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		errorLog.Fatal(err)
	}
	infoLog.Println("Connected to MongoDB")

	db := client.Database(dbName)

	// Signup relies on the duplicate-key error for taken emails.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		errorLog.Fatal(err)
	}

	templateCache, err := newTemplateCache()
	if err != nil {
		errorLog.Fatal(err)
	}

	// The anonymous cart and wishlist travel through the session
	// store, which encodes values with gob.
	gob.Register([]cart.Item{})
	gob.Register([]string{})

	session := scs.New()
	session.Store = mongodbstore.New(db)
	session.Lifetime = 30 * 24 * time.Hour
	session.Cookie.SameSite = http.SameSiteLaxMode

	formDecoder := schema.NewDecoder()
	formDecoder.IgnoreUnknownKeys(true)

	app := &application{
		errorLog:      errorLog,
		infoLog:       infoLog,
		session:       session,
		templateCache: templateCache,
		formDecoder:   formDecoder,
		google: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
		users:      &models.UserModel{C: db.Collection("users")},
		products:   &models.ProductModel{C: db.Collection("products")},
		categories: &models.CategoryModel{C: db.Collection("categories")},
		blogs:      &models.BlogModel{C: db.Collection("blogs")},
		banners:    &models.BannerModel{C: db.Collection("banners")},
	}
	app.userLocks.locks = make(map[string]*sync.Mutex)

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: errorLog,
		Handler:  app.routes(),
	}

	infoLog.Printf("Starting FreshCart on %s", *addr)
	err = srv.ListenAndServe()
	errorLog.Fatal(err)
}
