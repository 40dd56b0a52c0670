// Package schema defines the entities flowing through the desk pipeline and
// the enumerations shared by every service.
package schema

import "fmt"

// ProductID identifies a product. For bonds this is the CUSIP.
type ProductID string

// PricingSide is the side of a priced order or quote.
type PricingSide uint8

const (
	Bid PricingSide = iota
	Offer
)

func (s PricingSide) String() string {
	switch s {
	case Bid:
		return "BID"
	case Offer:
		return "OFFER"
	default:
		return fmt.Sprintf("PricingSide(%d)", uint8(s))
	}
}

// ParsePricingSide parses the wire form of a pricing side.
func ParsePricingSide(s string) (PricingSide, error) {
	switch s {
	case "BID":
		return Bid, nil
	case "OFFER":
		return Offer, nil
	default:
		return 0, fmt.Errorf("unknown pricing side: %q", s)
	}
}

// TradeSide is the direction of a booked trade or customer inquiry.
type TradeSide uint8

const (
	Buy TradeSide = iota
	Sell
)

func (s TradeSide) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return fmt.Sprintf("TradeSide(%d)", uint8(s))
	}
}

// ParseTradeSide parses the wire form of a trade side.
func ParseTradeSide(s string) (TradeSide, error) {
	switch s {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown trade side: %q", s)
	}
}

// OrderType is the execution style of an order.
type OrderType uint8

const (
	FOK OrderType = iota
	IOC
	Market
	Limit
	Stop
)

func (t OrderType) String() string {
	switch t {
	case FOK:
		return "FOK"
	case IOC:
		return "IOC"
	case Market:
		return "MARKET"
	case Limit:
		return "LIMIT"
	case Stop:
		return "STOP"
	default:
		return fmt.Sprintf("OrderType(%d)", uint8(t))
	}
}

// InquiryState is the negotiation state of a customer inquiry.
type InquiryState uint8

const (
	Received InquiryState = iota
	Quoted
	Done
	Rejected
	CustomerRejected
)

func (s InquiryState) String() string {
	switch s {
	case Received:
		return "RECEIVED"
	case Quoted:
		return "QUOTED"
	case Done:
		return "DONE"
	case Rejected:
		return "REJECTED"
	case CustomerRejected:
		return "CUSTOMER_REJECTED"
	default:
		return fmt.Sprintf("InquiryState(%d)", uint8(s))
	}
}

// ParseInquiryState parses the wire form of an inquiry state.
func ParseInquiryState(s string) (InquiryState, error) {
	switch s {
	case "RECEIVED":
		return Received, nil
	case "QUOTED":
		return Quoted, nil
	case "DONE":
		return Done, nil
	case "REJECTED":
		return Rejected, nil
	case "CUSTOMER_REJECTED":
		return CustomerRejected, nil
	default:
		return 0, fmt.Errorf("unknown inquiry state: %q", s)
	}
}

// Terminal reports whether no further transition is defined out of the state.
func (s InquiryState) Terminal() bool {
	switch s {
	case Done, Rejected, CustomerRejected:
		return true
	default:
		return false
	}
}

// PersistKind tags a historical sink with the entity stream it records.
type PersistKind uint8

const (
	PersistPosition PersistKind = iota
	PersistRisk
	PersistExecution
	PersistStreaming
	PersistInquiry
)

func (k PersistKind) String() string {
	switch k {
	case PersistPosition:
		return "POSITION"
	case PersistRisk:
		return "RISK"
	case PersistExecution:
		return "EXECUTION"
	case PersistStreaming:
		return "STREAMING"
	case PersistInquiry:
		return "INQUIRY"
	default:
		return fmt.Sprintf("PersistKind(%d)", uint8(k))
	}
}
