// Package location provides the bin/location catalog.
// A bin is addressed by rack letter, bay number, and level, formatted as
// "G-01-1".
package location

import (
	"context"
	"fmt"

	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/apperror"
	"github.com/catbe721-cyber/nexus-wms-sub001/internal/core/entity"
)

// Bin represents a storage location in the warehouse.
// The Catalog Code holds the formatted bin code, Name the zone display name.
type Bin struct {
	entity.Catalog

	// Rack is the rack letter (e.g. "G")
	Rack string `json:"rack"`

	// Bay is the bay number within the rack (1-based)
	Bay int `json:"bay"`

	// Level is the shelf level within the bay (kept textual: "1", "M", ...)
	Level string `json:"level"`
}

// FormatCode renders the canonical bin code, e.g. ("G", 1, "1") → "G-01-1".
func FormatCode(rack string, bay int, level string) string {
	return fmt.Sprintf("%s-%02d-%s", rack, bay, level)
}

// NewBin creates a bin with its canonical code.
func NewBin(rack string, bay int, level string) *Bin {
	code := FormatCode(rack, bay, level)
	return &Bin{
		Catalog: entity.NewCatalog(code, ZoneName(rack)),
		Rack:    rack,
		Bay:     bay,
		Level:   level,
	}
}

// BinCode returns the stored bin code.
func (b *Bin) BinCode() string {
	return b.Code
}

// Validate implements entity.Validatable.
func (b *Bin) Validate(ctx context.Context) error {
	if err := b.Catalog.Validate(ctx); err != nil {
		return err
	}
	if b.Rack == "" {
		return apperror.NewValidation("rack is required").
			WithDetail("field", "rack")
	}
	if b.Bay <= 0 {
		return apperror.NewValidation("bay must be positive").
			WithDetail("field", "bay").
			WithDetail("value", b.Bay)
	}
	if b.Level == "" {
		return apperror.NewValidation("level is required").
			WithDetail("field", "level")
	}
	return nil
}

// rackZones maps rack letters to zone display names.
// Racks outside the table are shown by their letter.
var rackZones = map[string]string{
	"A": "Ambient storage",
	"C": "Chilled",
	"F": "Frozen",
	"G": "General",
	"P": "Packaging",
	"R": "Returns",
}

// ZoneName returns the display name for a rack letter.
func ZoneName(rack string) string {
	if name, ok := rackZones[rack]; ok {
		return name
	}
	return rack
}
