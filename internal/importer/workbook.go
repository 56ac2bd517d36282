package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetCategories = "categories"
	SheetProducts   = "products"
	SheetSpecs      = "specs"
)

// CategoryRow is one line of the categories sheet. ID is the workbook-local id
// products refer to, not the database id.
type CategoryRow struct {
	ID          int
	Name        string
	Slug        string
	Description string
	Image       string
	Label       string
}

type SpecRow struct {
	ProductID int
	Name      string
	Value     string
	Unit      string
	SortOrder int
}

type ProductRow struct {
	ID               int
	CategoryID       int
	Name             string
	Slug             string
	Title            string
	Description      string
	ShortDescription string
	Content          string
	Image            string
	SKU              string
	Price            string
	Specs            []SpecRow
}

// Catalog is everything read from one workbook
type Catalog struct {
	Categories []CategoryRow
	Products   []ProductRow
}

// ReadWorkbook opens an XLSX file and parses its catalog sheets
func ReadWorkbook(path string) (*Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	return ParseWorkbook(f)
}

// ParseWorkbook reads the categories, products and specs sheets. Columns are
// looked up by header name so their order in the file does not matter. The
// specs sheet is optional.
func ParseWorkbook(f *excelize.File) (*Catalog, error) {
	catalog := &Catalog{}

	categoryRows, err := sheetRecords(f, SheetCategories, true)
	if err != nil {
		return nil, err
	}
	for i, rec := range categoryRows {
		id, err := rec.int("id")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetCategories, i+2, err)
		}
		row := CategoryRow{
			ID:          id,
			Name:        rec.str("name"),
			Slug:        rec.str("slug"),
			Description: rec.str("description"),
			Image:       rec.str("image"),
			Label:       rec.str("category"),
		}
		if row.Name == "" {
			continue
		}
		catalog.Categories = append(catalog.Categories, row)
	}

	productRows, err := sheetRecords(f, SheetProducts, true)
	if err != nil {
		return nil, err
	}
	for i, rec := range productRows {
		id, err := rec.int("id")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetProducts, i+2, err)
		}
		categoryID, err := rec.int("category_id")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetProducts, i+2, err)
		}
		row := ProductRow{
			ID:               id,
			CategoryID:       categoryID,
			Name:             rec.str("name"),
			Slug:             rec.str("slug"),
			Title:            rec.str("title"),
			Description:      rec.str("description"),
			ShortDescription: rec.str("short_description"),
			Content:          rec.str("content"),
			Image:            rec.str("image"),
			SKU:              rec.str("sku"),
			Price:            rec.str("price"),
		}
		if row.Name == "" {
			continue
		}
		catalog.Products = append(catalog.Products, row)
	}

	specRows, err := sheetRecords(f, SheetSpecs, false)
	if err != nil {
		return nil, err
	}
	specsByProduct := make(map[int][]SpecRow)
	for i, rec := range specRows {
		productID, err := rec.int("product_id")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetSpecs, i+2, err)
		}
		order, err := rec.int("sort_order")
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", SheetSpecs, i+2, err)
		}
		spec := SpecRow{
			ProductID: productID,
			Name:      rec.str("name"),
			Value:     rec.str("value"),
			Unit:      rec.str("unit"),
			SortOrder: order,
		}
		if spec.Name == "" {
			continue
		}
		specsByProduct[productID] = append(specsByProduct[productID], spec)
	}
	for i := range catalog.Products {
		specs := specsByProduct[catalog.Products[i].ID]
		sort.SliceStable(specs, func(a, b int) bool { return specs[a].SortOrder < specs[b].SortOrder })
		catalog.Products[i].Specs = specs
	}

	return catalog, nil
}

type record map[string]string

func (r record) str(column string) string {
	return strings.TrimSpace(r[column])
}

// int parses an integer cell, empty cells read as zero
func (r record) int(column string) (int, error) {
	v := r.str(column)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// spreadsheet apps like to store ids as 12.0
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("column %s: %q is not a number", column, v)
		}
		n = int(f)
	}
	return n, nil
}

func sheetRecords(f *excelize.File, sheet string, required bool) ([]record, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		if required {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
		return nil, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	records := make([]record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(record, len(header))
		empty := true
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			rec[header[i]] = cell
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
