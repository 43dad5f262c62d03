// Package handlers exposes the demo product catalogue over HTTP.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/stocktrack/pkg/errhttp"
	"github.com/ghuser/stocktrack/pkg/httpx"
	pkgvalidator "github.com/ghuser/stocktrack/pkg/validator"
	appsvcs "github.com/ghuser/stocktrack/services/product/application/services"
)

// CreateProductRequest is the request body for POST /products.
type CreateProductRequest struct {
	Name            string               `json:"name"                      validate:"required,notblank,max=255" example:"Desk lamp"`
	Description     string               `json:"description"               validate:"max=2000"                   example:"LED, warm white"`
	Stock           int                  `json:"stock"                     validate:"gte=0"                      example:"12"`
	StorageLocation *StorageLocationBody `json:"storageLocation,omitempty" validate:"omitempty"`
} // @name CreateProductRequest

// UpdateProductRequest is the request body for PUT /products/{id}. Omitted
// fields are left unchanged; clearStorageLocation removes the location.
type UpdateProductRequest struct {
	Name                 *string              `json:"name,omitempty"            validate:"omitempty,notblank,max=255" example:"Desk lamp"`
	Description          *string              `json:"description,omitempty"     validate:"omitempty,max=2000"          example:"LED, cold white"`
	Stock                *int                 `json:"stock,omitempty"           validate:"omitempty,gte=0"             example:"7"`
	StorageLocation      *StorageLocationBody `json:"storageLocation,omitempty" validate:"omitempty"`
	ClearStorageLocation bool                 `json:"clearStorageLocation,omitempty"`
} // @name UpdateProductRequest

// ProductsHandler serves the /products endpoints.
type ProductsHandler struct {
	svc  *appsvcs.ProductService
	errs *errhttp.Responder
}

// NewProductsHandler returns a ProductsHandler backed by svc.
func NewProductsHandler(svc *appsvcs.ProductService, errs *errhttp.Responder) *ProductsHandler {
	return &ProductsHandler{svc: svc, errs: errs}
}

// List returns all products.
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}		ProductResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products [get]
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.List(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get returns one product.
//
//	@Summary	Get product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	ProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [get]
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(p))
}

// Create adds a product.
//
//	@Summary	Create product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateProductRequest	true	"Product"
//	@Success	201		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/products [post]
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Create(r.Context(), appsvcs.CreateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Stock:           req.Stock,
		StorageLocation: req.StorageLocation.toModel(),
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toProductResponse(p))
}

// Update changes the given fields of a product.
//
//	@Summary	Update product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product ID"
//	@Param		request	body		UpdateProductRequest	true	"Fields to change"
//	@Success	200		{object}	ProductResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/products/{id} [put]
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateProductRequest](w, r)
	if !ok {
		return
	}

	p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), appsvcs.UpdateProductInput{
		Name:            req.Name,
		Description:     req.Description,
		Stock:           req.Stock,
		StorageLocation: req.StorageLocation.toModel(),
		ClearLocation:   req.ClearStorageLocation,
	})
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductResponse(p))
}

// Delete removes a product.
//
//	@Summary	Delete product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	DeleteProductResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/products/{id} [delete]
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, DeleteProductResponse{Success: true})
}

// Stats summarises the catalogue.
//
//	@Summary	Product statistics
//	@Tags		products
//	@Produce	json
//	@Success	200	{object}	ProductStatsResponse
//	@Failure	500	{object}	ErrorResponse
//	@Router		/products/stats [get]
func (h *ProductsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	if err != nil {
		h.errs.Write(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toProductStatsResponse(st))
}
