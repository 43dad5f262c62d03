package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ghuser/stocktrack/services/inventory/domain/models"
)

// ExportSheet is the worksheet name of item exports.
const ExportSheet = "Items"

var exportHeader = []any{"ID", "Name", "Quantity", "Location", "Created", "Updated"}

// ExportService renders item listings as XLSX workbooks.
type ExportService struct {
	items *ItemService
}

// NewExportService returns an ExportService reading items through items.
func NewExportService(items *ItemService) *ExportService {
	return &ExportService{items: items}
}

// Items writes the items matching in to a single-sheet workbook.
func (s *ExportService) Items(ctx context.Context, in ListItemsInput) ([]byte, error) {
	items, err := s.items.List(ctx, in)
	if err != nil {
		return nil, err
	}
	data, err := renderItems(items)
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return data, nil
}

func renderItems(items []*models.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "F1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ExportSheet, "B", "B", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ExportSheet, "D", "F", 24); err != nil {
		return nil, err
	}

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			item.ID,
			item.Name.String(),
			item.Quantity,
			item.Location,
			item.CreatedAt.UTC().Format(time.RFC3339),
			item.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
