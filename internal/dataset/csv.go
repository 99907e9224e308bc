package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names expected in the header row of a bike dataset file.
const (
	ColBikeType       = "bike_type"
	ColComponent      = "component"
	ColQuality        = "quality"
	ColRequiredQty    = "required_qty"
	ColInventory      = "available_inventory"
	ColProductionTime = "production_time_hours"
	ColPriorityWeight = "priority_weight"
	ColUnitCost       = "unit_cost"
)

var requiredColumns = []string{
	ColBikeType, ColComponent, ColQuality, ColRequiredQty,
	ColInventory, ColProductionTime, ColPriorityWeight, ColUnitCost,
}

// Record is one source row: a (bike type, component, quality) occurrence with
// its quantities and per-type scalars.
type Record struct {
	BikeType       string
	Component      string
	Quality        string
	RequiredQty    int
	Inventory      int
	ProductionTime float64
	PriorityWeight float64
	UnitCost       float64
}

// LoadCSV reads a bike dataset CSV file. The first row is treated as headers
// and must contain every required column; extra columns are ignored.
func LoadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	return records, nil
}

// Read parses dataset records from CSV content.
func Read(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file (no header row)")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(strings.ToLower(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRecord(row []string, index map[string]int) (Record, error) {
	field := func(col string) (string, error) {
		i := index[col]
		if i >= len(row) {
			return "", fmt.Errorf("column %q out of range", col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec Record
	var err error
	if rec.BikeType, err = field(ColBikeType); err != nil {
		return rec, err
	}
	if rec.BikeType == "" {
		return rec, fmt.Errorf("empty %s", ColBikeType)
	}
	if rec.Component, err = field(ColComponent); err != nil {
		return rec, err
	}
	if rec.Component == "" {
		return rec, fmt.Errorf("empty %s", ColComponent)
	}
	if rec.Quality, err = field(ColQuality); err != nil {
		return rec, err
	}

	ints := []struct {
		col string
		dst *int
	}{
		{ColRequiredQty, &rec.RequiredQty},
		{ColInventory, &rec.Inventory},
	}
	for _, p := range ints {
		s, err := field(p.col)
		if err != nil {
			return rec, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return rec, fmt.Errorf("column %q: %w", p.col, err)
		}
		if v < 0 {
			return rec, fmt.Errorf("column %q: negative value %d", p.col, v)
		}
		*p.dst = v
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{ColProductionTime, &rec.ProductionTime},
		{ColPriorityWeight, &rec.PriorityWeight},
		{ColUnitCost, &rec.UnitCost},
	}
	for _, p := range floats {
		s, err := field(p.col)
		if err != nil {
			return rec, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return rec, fmt.Errorf("column %q: %w", p.col, err)
		}
		*p.dst = v
	}

	return rec, nil
}
