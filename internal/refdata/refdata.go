// Package refdata is the static bond reference table: the current on-the-run
// US Treasury universe with coupons, maturities, and PV01 factors.
package refdata

import (
	"errors"
	"time"

	"main/internal/schema"
)

var ErrUnknownProduct = errors.New("unknown product")

type entry struct {
	bond schema.Bond
	pv01 float64
}

func bond(id schema.ProductID, coupon float64, maturity string) schema.Bond {
	m, err := time.Parse("2006/01/02", maturity)
	if err != nil {
		panic(err)
	}
	return schema.Bond{ID: id, Ticker: "T", Coupon: coupon, Maturity: m}
}

// The universe in maturity order: 2Y, 3Y, 5Y, 7Y, 10Y, 20Y, 30Y.
var universe = []entry{
	{bond("91282CFX4", 0.04500, "2024/11/30"), 0.0188},
	{bond("91282CGA3", 0.04000, "2025/12/15"), 0.0276},
	{bond("91282CFZ9", 0.03875, "2027/11/30"), 0.0452},
	{bond("91282CFY2", 0.03875, "2029/11/30"), 0.0617},
	{bond("91282CFV8", 0.04125, "2032/11/15"), 0.0862},
	{bond("912810TM0", 0.04000, "2042/11/15"), 0.1442},
	{bond("912810TL2", 0.04000, "2052/11/15"), 0.1992},
}

var byID = func() map[schema.ProductID]entry {
	m := make(map[schema.ProductID]entry, len(universe))
	for _, e := range universe {
		m[e.bond.ID] = e
	}
	return m
}()

// Lookup resolves a product id against the static table.
func Lookup(id schema.ProductID) (schema.Bond, error) {
	e, ok := byID[id]
	if !ok {
		return schema.Bond{}, ErrUnknownProduct
	}
	return e.bond, nil
}

// PV01 returns the static PV01 factor for a product id.
func PV01(id schema.ProductID) (float64, error) {
	e, ok := byID[id]
	if !ok {
		return 0, ErrUnknownProduct
	}
	return e.pv01, nil
}

// All returns the bond universe in maturity order.
func All() []schema.Bond {
	bonds := make([]schema.Bond, 0, len(universe))
	for _, e := range universe {
		bonds = append(bonds, e.bond)
	}
	return bonds
}

func sector(name string, from, to int) schema.BucketedSector {
	products := make([]schema.Bond, 0, to-from)
	for _, e := range universe[from:to] {
		products = append(products, e.bond)
	}
	return schema.BucketedSector{Name: name, Products: products}
}

// FrontEnd is the 2Y and 3Y bucket.
func FrontEnd() schema.BucketedSector { return sector("FrontEnd", 0, 2) }

// Belly is the 5Y, 7Y, and 10Y bucket.
func Belly() schema.BucketedSector { return sector("Belly", 2, 5) }

// LongEnd is the 20Y and 30Y bucket.
func LongEnd() schema.BucketedSector { return sector("LongEnd", 5, 7) }
