package catalog

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/art-shop-bot/internal/markup"
)

const (
	sheetReady     = "ready"
	sheetCustom    = "custom"
	optionsDivider = " | "
)

var (
	readyHeader  = []interface{}{"id", "name", "price", "image", "category", "holo"}
	customHeader = []interface{}{"id", "name", "price", "image", "color", "description", "options"}
)

// ExportWorkbook выгружает каталог в xlsx: лист ready и лист custom.
// Варианты услуги пишутся в одну ячейку через " | ".
func ExportWorkbook(c Catalog) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetReady); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetCustom); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	if err := f.SetSheetRow(sheetReady, "A1", &readyHeader); err != nil {
		return nil, fmt.Errorf("ready header: %w", err)
	}
	for i, p := range c.ReadyProducts {
		row := []interface{}{p.ID, p.Name, p.Price, p.Image, p.Category, p.Highlight}
		if err := setRow(f, sheetReady, i+2, row); err != nil {
			return nil, err
		}
	}

	if err := f.SetSheetRow(sheetCustom, "A1", &customHeader); err != nil {
		return nil, fmt.Errorf("custom header: %w", err)
	}
	for i, s := range c.CustomServices {
		row := []interface{}{s.ID, s.Name, s.BasePrice, s.Image, s.Color, s.Description,
			strings.Join(s.Options, optionsDivider)}
		if err := setRow(f, sheetCustom, i+2, row); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

// LoadWorkbook читает каталог из xlsx того же формата, что и ExportWorkbook.
// Отсутствующий лист даёт пустой список; первая строка считается заголовком.
func LoadWorkbook(r io.Reader) (Catalog, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	c := Catalog{ReadyProducts: []ReadyProduct{}, CustomServices: []CustomService{}}

	if rows, err := f.GetRows(sheetReady); err == nil {
		for i, row := range rows {
			if i == 0 || cell(row, 0) == "" {
				continue
			}
			c.ReadyProducts = append(c.ReadyProducts, ReadyProduct{
				ID:        cell(row, 0),
				Name:      cell(row, 1),
				Price:     markup.ParseLeadingInt(cell(row, 2)),
				Image:     cell(row, 3),
				Category:  cell(row, 4),
				Highlight: strings.EqualFold(cell(row, 5), "true"),
			})
		}
	}

	if rows, err := f.GetRows(sheetCustom); err == nil {
		for i, row := range rows {
			if i == 0 || cell(row, 0) == "" {
				continue
			}
			var opts []string
			for _, o := range strings.Split(cell(row, 6), "|") {
				if o = strings.TrimSpace(o); o != "" {
					opts = append(opts, o)
				}
			}
			if len(opts) == 0 {
				continue
			}
			c.CustomServices = append(c.CustomServices, CustomService{
				ID:          cell(row, 0),
				Name:        cell(row, 1),
				BasePrice:   markup.ParseLeadingInt(cell(row, 2)),
				Image:       cell(row, 3),
				Color:       cell(row, 4),
				Description: cell(row, 5),
				Options:     opts,
			})
		}
	}
	return c, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
