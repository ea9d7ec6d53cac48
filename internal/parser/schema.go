package parser

import (
	"fmt"
	"strings"
)

// Column names in the order records expose them.
const (
	ColKilometers = "kilometers"
	ColYear       = "year"
	ColEngine     = "engine"
	ColPrice      = "price"
)

// ColumnNames lists the numeric columns in record order.
var ColumnNames = []string{ColKilometers, ColYear, ColEngine, ColPrice}

// Schema maps named listing columns to 0-based field positions in a raw line.
type Schema struct {
	Year       int
	Engine     int
	Kilometers int
	Price      int
	// MinFields is the minimum number of split fields a line must have.
	MinFields int
	Delimiter string
}

// DefaultSchema returns the layout of the used-car listings export.
func DefaultSchema() Schema {
	return Schema{
		Year:       5,
		Engine:     7,
		Kilometers: 8,
		Price:      11,
		MinFields:  12,
		Delimiter:  ",",
	}
}

// Index returns the field position for a column name.
func (s Schema) Index(name string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ColKilometers, "km":
		return s.Kilometers, true
	case ColYear:
		return s.Year, true
	case ColEngine:
		return s.Engine, true
	case ColPrice:
		return s.Price, true
	}
	return 0, false
}

// Validate reports whether every position is usable with MinFields.
func (s Schema) Validate() error {
	if s.Delimiter == "" {
		return fmt.Errorf("schema: empty delimiter")
	}
	seen := map[int]string{}
	for _, name := range ColumnNames {
		idx, _ := s.Index(name)
		if idx < 0 {
			return fmt.Errorf("schema: %s column index %d is negative", name, idx)
		}
		if idx >= s.MinFields {
			return fmt.Errorf("schema: %s column index %d not below min fields %d", name, idx, s.MinFields)
		}
		if other, ok := seen[idx]; ok {
			return fmt.Errorf("schema: %s and %s share column index %d", other, name, idx)
		}
		seen[idx] = name
	}
	return nil
}
