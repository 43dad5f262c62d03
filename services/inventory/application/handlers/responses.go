package handlers

import (
	"time"

	appsvcs "github.com/ghuser/stocktrack/services/inventory/application/services"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// ItemResponse is the JSON representation of an item.
type ItemResponse struct {
	ID        int64     `json:"id"        example:"1"`
	Name      string    `json:"name"      example:"M4 screws"`
	Quantity  int       `json:"quantity"  example:"120"`
	Location  string    `json:"location"  example:"Cabinet 1, left top"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
} // @name Item

// BookingResponse is the JSON representation of a booking.
type BookingResponse struct {
	ID        int64         `json:"id"             example:"7"`
	ItemID    int64         `json:"itemId"         example:"1"`
	Quantity  int           `json:"quantity"       example:"5"`
	Type      string        `json:"type"           example:"out" enums:"in,out"`
	Notes     *string       `json:"notes"          example:"Order #4711"`
	CreatedAt time.Time     `json:"createdAt"      example:"2024-01-15T10:30:00Z"`
	Item      *ItemResponse `json:"item,omitempty"`
} // @name Booking

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	TotalItems    int64 `json:"totalItems"    example:"42"`
	TotalQuantity int64 `json:"totalQuantity" example:"1337"`
	LowStock      int64 `json:"lowStock"      example:"3"`
	OutOfStock    int64 `json:"outOfStock"    example:"1"`
	TotalBookings int64 `json:"totalBookings" example:"250"`
} // @name Stats

// StorageSlotResponse is one shelf position of a cabinet.
type StorageSlotResponse struct {
	Location string         `json:"location" example:"Cabinet 1, left top"`
	Side     string         `json:"side"     example:"left"`
	Shelf    string         `json:"shelf"    example:"top"`
	Items    []ItemResponse `json:"items"`
} // @name StorageSlot

// StorageCabinetResponse groups the slots of one cabinet.
type StorageCabinetResponse struct {
	Cabinet int                   `json:"cabinet" example:"1"`
	Slots   []StorageSlotResponse `json:"slots"`
} // @name StorageCabinet

// StorageMapResponse places items on the cabinet layout.
type StorageMapResponse struct {
	Cabinets   []StorageCabinetResponse `json:"cabinets"`
	Unassigned []ItemResponse           `json:"unassigned"`
} // @name StorageMap

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"item not found"`
} // @name ErrorResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:        item.ID,
		Name:      item.Name.String(),
		Quantity:  item.Quantity,
		Location:  item.Location,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = toItemResponse(item)
	}
	return out
}

func toBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:        b.ID,
		ItemID:    b.ItemID,
		Quantity:  b.Quantity,
		Type:      string(b.Type),
		CreatedAt: b.CreatedAt,
	}
	if b.Notes != "" {
		notes := b.Notes
		resp.Notes = &notes
	}
	if b.Item != nil {
		item := toItemResponse(b.Item)
		resp.Item = &item
	}
	return resp
}

func toStorageMapResponse(m *appsvcs.StorageMap) StorageMapResponse {
	resp := StorageMapResponse{
		Cabinets:   make([]StorageCabinetResponse, len(m.Cabinets)),
		Unassigned: toItemResponses(m.Unassigned),
	}
	for i, c := range m.Cabinets {
		slots := make([]StorageSlotResponse, len(c.Slots))
		for j, s := range c.Slots {
			slots[j] = StorageSlotResponse{
				Location: s.Location.String(),
				Side:     string(s.Location.Side),
				Shelf:    string(s.Location.Shelf),
				Items:    toItemResponses(s.Items),
			}
		}
		resp.Cabinets[i] = StorageCabinetResponse{Cabinet: c.Cabinet, Slots: slots}
	}
	return resp
}
