package schema

import (
	"fmt"
	"sort"
	"strings"

	"main/internal/fractional"
)

// Trade is an execution booked against a named book.
type Trade struct {
	Product  Bond
	TradeID  string
	Price    float64
	Book     string
	Quantity int64
	Side     TradeSide
}

func (t Trade) Key() string { return t.TradeID }

// Position is the signed net quantity per book for one product.
// Unseen books default to zero.
type Position struct {
	Product Bond
	Books   map[string]int64
}

// NewPosition creates an empty position for a product.
func NewPosition(product Bond) Position {
	return Position{Product: product, Books: make(map[string]int64)}
}

func (p Position) Key() string { return string(p.Product.ID) }

// Quantity returns the net quantity held in one book.
func (p Position) Quantity(book string) int64 {
	return p.Books[book]
}

// Add applies a signed quantity delta to the named book.
func (p Position) Add(book string, quantity int64) {
	p.Books[book] += quantity
}

// Aggregate sums the net quantity across all books.
func (p Position) Aggregate() int64 {
	var total int64
	for _, q := range p.Books {
		total += q
	}
	return total
}

// Render produces the historical-sink line body for a position, with books
// listed in name order.
func (p Position) Render() string {
	books := make([]string, 0, len(p.Books))
	for book := range p.Books {
		books = append(books, book)
	}
	sort.Strings(books)

	var b strings.Builder
	fmt.Fprintf(&b, "CUSIP: %s", p.Product.ID)
	for _, book := range books {
		fmt.Fprintf(&b, ", %s: %d", book, p.Books[book])
	}
	fmt.Fprintf(&b, ", Aggregate: %d", p.Aggregate())
	return b.String()
}

// Render produces the historical-sink line body for a trade.
func (t Trade) Render() string {
	return fmt.Sprintf("CUSIP: %s, Trade ID: %s, Price: %s, Book: %s, Quantity: %d, Side: %s",
		t.Product.ID, t.TradeID, fractional.Format(t.Price), t.Book, t.Quantity, t.Side)
}
