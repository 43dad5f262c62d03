package handlers

import (
	"time"

	appsvcs "github.com/ghuser/stocktrack/services/product/application/services"
	"github.com/ghuser/stocktrack/services/product/domain/models"
)

// StorageLocationBody places a product on the cabinet grid.
type StorageLocationBody struct {
	Position int    `json:"position" validate:"gte=1,lte=9"                example:"3"`
	Height   string `json:"height"   validate:"required,oneof=top middle bottom" example:"middle"`
	Side     string `json:"side"     validate:"required,oneof=left right"  example:"left"`
} // @name StorageLocation

// ProductResponse is the JSON representation of a product.
type ProductResponse struct {
	ID              string               `json:"id"                        example:"0b5f3c1e-9f4e-4d55-9a57-4a2b9f0f8a11"`
	Name            string               `json:"name"                      example:"Smart Watch"`
	Description     string               `json:"description"               example:"Fitness tracker and smartwatch"`
	Stock           int                  `json:"stock"                     example:"22"`
	StorageLocation *StorageLocationBody `json:"storageLocation,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"                 example:"2024-01-15T10:30:00Z"`
	UpdatedAt       time.Time            `json:"updatedAt"                 example:"2024-01-15T10:30:00Z"`
} // @name Product

// ProductStatsResponse is the product dashboard summary.
type ProductStatsResponse struct {
	TotalProducts int `json:"totalProducts" example:"5"`
	LowStock      int `json:"lowStock"      example:"1"`
} // @name ProductStats

// DeleteProductResponse confirms a deletion.
type DeleteProductResponse struct {
	Success bool `json:"success" example:"true"`
} // @name DeleteProductResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"product not found"`
} // @name ProductErrorResponse

func (b *StorageLocationBody) toModel() *models.StorageLocation {
	if b == nil {
		return nil
	}
	return &models.StorageLocation{Position: b.Position, Height: b.Height, Side: b.Side}
}

func toProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if loc := p.StorageLocation; loc != nil {
		resp.StorageLocation = &StorageLocationBody{Position: loc.Position, Height: loc.Height, Side: loc.Side}
	}
	return resp
}

func toProductStatsResponse(st *appsvcs.ProductStats) ProductStatsResponse {
	return ProductStatsResponse{TotalProducts: st.TotalProducts, LowStock: st.LowStock}
}
