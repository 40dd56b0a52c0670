package inquiry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/bus"
	"main/internal/schema"
)

var testBond = schema.Bond{ID: "91282CFV8", Ticker: "T"}

func received(id string) schema.Inquiry {
	return schema.Inquiry{
		ID:       id,
		Product:  testBond,
		Side:     schema.Buy,
		Quantity: 1_000_000,
		Price:    100.0,
		State:    schema.Received,
	}
}

type capturingInquiryListener struct {
	bus.NopListener[schema.Inquiry]
	inquiries []schema.Inquiry
}

func (l *capturingInquiryListener) OnAdd(inq schema.Inquiry) {
	l.inquiries = append(l.inquiries, inq)
}

func TestReceivedInquiryCompletesQuoteRoundTrip(t *testing.T) {
	s := New()
	l := &capturingInquiryListener{}
	s.AddListener(l)

	in := received("INQ1")
	in.Price = 99.0
	s.OnMessage(in)

	// The quote round trip runs inside OnMessage; by the time listeners
	// fire the stored inquiry is already DONE at the quote price.
	inq, err := s.Get("INQ1")
	require.NoError(t, err)
	assert.Equal(t, schema.Done, inq.State)
	assert.Equal(t, DefaultQuotePrice, inq.Price)

	require.Len(t, l.inquiries, 1)
	assert.Equal(t, schema.Done, l.inquiries[0].State)
}

func TestQuotedInquiryTransitionsToDoneSilently(t *testing.T) {
	s := New()
	l := &capturingInquiryListener{}
	s.AddListener(l)

	inq := received("INQ1")
	inq.State = schema.Quoted
	s.OnMessage(inq)

	stored, err := s.Get("INQ1")
	require.NoError(t, err)
	assert.Equal(t, schema.Done, stored.State)
	assert.Empty(t, l.inquiries)
}

func TestSendQuote(t *testing.T) {
	s := New()
	s.SetConnector(nil) // leave published inquiries in RECEIVED
	s.OnMessage(received("INQ1"))

	s.SetConnector(&QuoteConnector{service: s})
	require.NoError(t, s.SendQuote("INQ1", 100.515625))

	inq, err := s.Get("INQ1")
	require.NoError(t, err)
	assert.Equal(t, schema.Done, inq.State)
	assert.Equal(t, 100.515625, inq.Price)
}

func TestSendQuoteRequiresReceived(t *testing.T) {
	s := New()
	s.OnMessage(received("INQ1")) // round trip drives it to DONE

	assert.ErrorIs(t, s.SendQuote("INQ1", 100.0), ErrInvalidTransition)
	assert.ErrorIs(t, s.SendQuote("missing", 100.0), ErrUnknownInquiry)
}

func TestRejectInquiry(t *testing.T) {
	s := New()
	s.SetConnector(nil)
	l := &capturingInquiryListener{}
	s.AddListener(l)

	s.OnMessage(received("INQ1"))
	l.inquiries = nil

	require.NoError(t, s.RejectInquiry("INQ1"))

	inq, err := s.Get("INQ1")
	require.NoError(t, err)
	assert.Equal(t, schema.Rejected, inq.State)
	// Rejection does not notify listeners.
	assert.Empty(t, l.inquiries)
}

func TestRejectInquiryTerminalGuard(t *testing.T) {
	s := New()
	s.OnMessage(received("INQ1")) // lands in DONE

	assert.ErrorIs(t, s.RejectInquiry("INQ1"), ErrInvalidTransition)
	assert.ErrorIs(t, s.RejectInquiry("missing"), ErrUnknownInquiry)
}

func TestGetUnknownInquiry(t *testing.T) {
	_, err := New().Get("missing")
	assert.ErrorIs(t, err, bus.ErrNotFound)
}
