package schema

import (
	"fmt"
	"strings"
)

// PV01 is the price value of a basis point for one product, scaled by the
// aggregate position quantity.
type PV01 struct {
	Product  Bond
	Value    float64
	Quantity int64
}

func (r PV01) Key() string { return string(r.Product.ID) }

// Render produces the historical-sink line body for a PV01 risk entry.
func (r PV01) Render() string {
	return fmt.Sprintf("CUSIP: %s, PV01: %f, Quantity: %d", r.Product.ID, r.Value, r.Quantity)
}

// BucketedSector is a named, ordered grouping of products over which risk is
// aggregated for reporting. It is a view, not a persisted entity.
type BucketedSector struct {
	Name     string
	Products []Bond
}

// SectorPV01 is the aggregated risk over one bucketed sector.
type SectorPV01 struct {
	Sector   BucketedSector
	Value    float64
	Quantity int64
}

// Render produces a reporting line for a sector risk entry.
func (r SectorPV01) Render() string {
	ids := make([]string, 0, len(r.Sector.Products))
	for _, p := range r.Sector.Products {
		ids = append(ids, string(p.ID))
	}
	return fmt.Sprintf("Sector: %s [%s], PV01: %f, Quantity: %d",
		r.Sector.Name, strings.Join(ids, " "), r.Value, r.Quantity)
}
