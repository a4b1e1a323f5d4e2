package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Accounts     *AccountHandler
	Blogs        *BlogHandler
	Products     *ProductHandler
	Shops        *ShopHandler
	MarketPrices *MarketPriceHandler
	Trainings    *TrainingHandler
	Cart         *CartHandler
}

type RouterOptions struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

func NewRouter(h Handlers, opts RouterOptions, log *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(log.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(opts.RequestTimeout))
	if opts.MaxBodyBytes > 0 {
		r.Use(middleware.RequestSize(opts.MaxBodyBytes))
	}
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/signup", h.Accounts.Signup)
	r.Post("/login", h.Accounts.Login)

	r.Route("/blogs", func(r chi.Router) {
		r.Post("/", h.Blogs.Create)
		r.Get("/", h.Blogs.List)
		r.Get("/title/{title}", h.Blogs.SearchByTitle)
		r.Get("/user/{username}", h.Blogs.ByUsername)
		r.Get("/category/{category}", h.Blogs.ByCategory)
		r.Get("/{id}", h.Blogs.Get)
		r.Put("/{id}", h.Blogs.Update)
		r.Delete("/{id}", h.Blogs.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", h.Products.Create)
		r.Get("/", h.Products.List)
		r.Get("/{productId}", h.Products.Get)
		r.Put("/{productId}", h.Products.Update)
		r.Delete("/{productId}", h.Products.Delete)
	})

	r.Route("/shops", func(r chi.Router) {
		r.Post("/", h.Shops.Create)
		r.Get("/", h.Shops.List)
		r.Get("/{id}", h.Shops.Get)
		r.Put("/{id}", h.Shops.Update)
		r.Delete("/{id}", h.Shops.Delete)
	})

	r.Route("/marketprices", func(r chi.Router) {
		r.Post("/", h.MarketPrices.Create)
		r.Get("/", h.MarketPrices.List)
		r.Get("/{id}", h.MarketPrices.Get)
		r.Put("/{id}", h.MarketPrices.Update)
		r.Delete("/{id}", h.MarketPrices.Delete)
	})

	// chi keeps param names per method, so GET reads {name} while PUT and
	// DELETE read {id} on the same segment.
	r.Route("/trainings", func(r chi.Router) {
		r.Post("/", h.Trainings.Create)
		r.Get("/", h.Trainings.List)
		r.Get("/{name}", h.Trainings.GetByName)
		r.Put("/{id}", h.Trainings.Update)
		r.Delete("/{id}", h.Trainings.Delete)
	})

	r.Route("/cart", func(r chi.Router) {
		r.Post("/", h.Cart.AddItem)
		r.Get("/{userId}", h.Cart.ListItems)
		r.Put("/{cartItemId}", h.Cart.AdjustQuantity)
		r.Delete("/{cartItemId}", h.Cart.RemoveItem)
	})

	return r
}
