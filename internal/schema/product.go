package schema

import "time"

// Bond is an immutable fixed-income product identity.
type Bond struct {
	ID       ProductID
	Ticker   string
	Coupon   float64
	Maturity time.Time
}
