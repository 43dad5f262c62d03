package services

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	inventory "github.com/ghuser/stocktrack/services/inventory/domain"
	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// QR code size bounds in pixels.
const (
	MinQRSize     = 64
	MaxQRSize     = 1024
	DefaultQRSize = 256
)

// StorageSlot is one shelf position and the items stored there.
type StorageSlot struct {
	Location models.Location
	Items    []*models.Item
}

// StorageCabinet groups the six slots of a cabinet in canonical order.
type StorageCabinet struct {
	Cabinet int
	Slots   []StorageSlot
}

// StorageMap places every item on its cabinet slot. Items whose location is
// not in canonical form are listed as Unassigned.
type StorageMap struct {
	Cabinets   []StorageCabinet
	Unassigned []*models.Item
}

// LocationService serves the storage layout: canonical locations, QR labels
// and the storage map.
type LocationService struct {
	items *ItemService
}

// NewLocationService returns a LocationService reading items through items.
func NewLocationService(items *ItemService) *LocationService {
	return &LocationService{items: items}
}

// All returns the canonical names of all storage locations.
func (s *LocationService) All() []string {
	all := models.AllLocations()
	out := make([]string, len(all))
	for i, l := range all {
		out[i] = l.String()
	}
	return out
}

// QRCode renders a PNG QR label for location with high error correction.
// size 0 selects DefaultQRSize.
func (s *LocationService) QRCode(location string, size int) ([]byte, error) {
	loc, err := models.ParseLocation(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", inventory.ErrInvalidQuery, err)
	}
	if size == 0 {
		size = DefaultQRSize
	}
	if size < MinQRSize || size > MaxQRSize {
		return nil, fmt.Errorf("%w: size must be between %d and %d", inventory.ErrInvalidQuery, MinQRSize, MaxQRSize)
	}
	png, err := qrcode.Encode(loc.String(), qrcode.High, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// StorageMap groups all items by cabinet and slot.
func (s *LocationService) StorageMap(ctx context.Context) (*StorageMap, error) {
	items, err := s.items.List(ctx, ListItemsInput{})
	if err != nil {
		return nil, err
	}

	all := models.AllLocations()
	slots := make(map[models.Location]*StorageSlot, len(all))
	m := &StorageMap{}
	for _, l := range all {
		if len(m.Cabinets) == 0 || m.Cabinets[len(m.Cabinets)-1].Cabinet != l.Cabinet {
			m.Cabinets = append(m.Cabinets, StorageCabinet{Cabinet: l.Cabinet})
		}
		c := &m.Cabinets[len(m.Cabinets)-1]
		c.Slots = append(c.Slots, StorageSlot{Location: l, Items: []*models.Item{}})
	}
	for ci := range m.Cabinets {
		for si := range m.Cabinets[ci].Slots {
			slot := &m.Cabinets[ci].Slots[si]
			slots[slot.Location] = slot
		}
	}

	m.Unassigned = []*models.Item{}
	for _, item := range items {
		loc, err := models.ParseLocation(item.Location)
		if err != nil {
			m.Unassigned = append(m.Unassigned, item)
			continue
		}
		slots[loc].Items = append(slots[loc].Items, item)
	}
	return m, nil
}
