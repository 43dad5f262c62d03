package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stocktrack/pkg/app"
	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/services/product/application/handlers"
	appsvcs "github.com/ghuser/stocktrack/services/product/application/services"
)

// ProductRoutes registers the /products endpoints backed by a.Products.
func ProductRoutes(r chi.Router, a *app.Application) {
	svc := appsvcs.NewProductService(a.Products, a.Config.ProductLowStockThreshold)
	Mount(r, svc, errhttp.NewResponder(a.Logger, a.Config.IsProduction()))
}

// Mount registers the product endpoints on r.
func Mount(r chi.Router, svc *appsvcs.ProductService, errs *errhttp.Responder) {
	h := handlers.NewProductsHandler(svc, errs)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/stats", h.Stats)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
