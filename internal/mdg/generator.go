// Package mdg generates the deterministic input files the desk pipeline
// replays: prices, market data snapshots, externally booked trades, and
// customer inquiries, covering the whole bond universe.
package mdg

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"main/internal/fractional"
	"main/internal/refdata"
)

const (
	tick = 1.0 / 256.0

	midLow  = 99.0
	midHigh = 101.0
)

// WritePrices emits perProduct price records per bond. Mids oscillate
// between 99 and 101 in 1/256 steps; spreads alternate between 1/128 and
// 1/64.
func WritePrices(w io.Writer, perProduct int) error {
	for _, bond := range refdata.All() {
		mid := midLow
		dir := 1.0
		for i := 0; i < perProduct; i++ {
			spread := 1.0 / 128.0
			if i%2 == 1 {
				spread = 1.0 / 64.0
			}
			if _, err := fmt.Fprintf(w, "%s,%s,%s\n",
				bond.ID, fractional.Format(mid), fractional.Format(spread)); err != nil {
				return err
			}
			mid += dir * tick
			if mid >= midHigh {
				dir = -1.0
			} else if mid <= midLow {
				dir = 1.0
			}
		}
	}
	return nil
}

// WriteMarketData emits perProduct order-book snapshots per bond: five bid
// and five offer levels around an oscillating mid, with the top-of-book
// spread cycling between 1/128 and 1/32 and sizes growing 10M to 50M by
// level.
func WriteMarketData(w io.Writer, perProduct int) error {
	for _, bond := range refdata.All() {
		mid := midLow
		dir := 1.0
		for i := 0; i < perProduct; i++ {
			spreadTicks := i%4 + 1 // top spread in 1/128 units: 1/128 .. 1/32
			halfSpread := float64(spreadTicks) / 256.0
			for level := 0; level < 5; level++ {
				price := mid - halfSpread - float64(level)*tick
				quantity := int64(level+1) * 10_000_000
				if _, err := fmt.Fprintf(w, "%s,%s,%d,BID\n",
					bond.ID, fractional.Format(price), quantity); err != nil {
					return err
				}
			}
			for level := 0; level < 5; level++ {
				price := mid + halfSpread + float64(level)*tick
				quantity := int64(level+1) * 10_000_000
				if _, err := fmt.Fprintf(w, "%s,%s,%d,OFFER\n",
					bond.ID, fractional.Format(price), quantity); err != nil {
					return err
				}
			}
			mid += dir * tick
			if mid >= midHigh {
				dir = -1.0
			} else if mid <= midLow {
				dir = 1.0
			}
		}
	}
	return nil
}

// WriteTrades emits perProduct externally booked trades per bond,
// alternating BUY at 99 and SELL at 100, rotating books, with quantities
// cycling 1M to 5M.
func WriteTrades(w io.Writer, perProduct int, books []string) error {
	if len(books) == 0 {
		books = []string{"TRSY1", "TRSY2", "TRSY3"}
	}
	n := 0
	for _, bond := range refdata.All() {
		for i := 0; i < perProduct; i++ {
			side := "BUY"
			price := 99.0
			if i%2 == 1 {
				side = "SELL"
				price = 100.0
			}
			quantity := int64(i%5+1) * 1_000_000
			if _, err := fmt.Fprintf(w, "%s,T%d,%s,%s,%d,%s\n",
				bond.ID, n+1, fractional.Format(price), books[n%len(books)], quantity, side); err != nil {
				return err
			}
			n++
		}
	}
	return nil
}

// WriteInquiries emits perProduct customer inquiries per bond, all in
// RECEIVED state with generated ids.
func WriteInquiries(w io.Writer, perProduct int) error {
	for _, bond := range refdata.All() {
		for i := 0; i < perProduct; i++ {
			side := "BUY"
			if i%2 == 1 {
				side = "SELL"
			}
			quantity := int64(i%5+1) * 1_000_000
			if _, err := fmt.Fprintf(w, "%s,%s,%s,%d,%s,RECEIVED\n",
				uuid.NewString(), bond.ID, side, quantity, fractional.Format(100.0)); err != nil {
				return err
			}
		}
	}
	return nil
}
