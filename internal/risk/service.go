// Package risk derives PV01 risk per position and aggregates it across named
// product buckets.
package risk

import (
	"main/internal/bus"
	"main/internal/refdata"
	"main/internal/schema"
)

// Service is the keyed store of single-name PV01 entries, keyed by product.
type Service struct {
	pv01s     map[schema.ProductID]schema.PV01
	listeners bus.ListenerSet[schema.PV01]
	listener  *PositionListener
}

var _ bus.Service[schema.ProductID, schema.PV01] = (*Service)(nil)

func New() *Service {
	s := &Service{pv01s: make(map[schema.ProductID]schema.PV01)}
	s.listener = &PositionListener{service: s}
	return s
}

// Get returns the current PV01 entry for a product.
func (s *Service) Get(id schema.ProductID) (schema.PV01, error) {
	pv, ok := s.pv01s[id]
	if !ok {
		return schema.PV01{}, bus.ErrNotFound
	}
	return pv, nil
}

// OnMessage stores the PV01 entry by product and fans it out.
func (s *Service) OnMessage(pv schema.PV01) {
	s.pv01s[pv.Product.ID] = pv
	s.listeners.AnnounceAdd(pv)
}

func (s *Service) AddListener(l bus.Listener[schema.PV01]) {
	s.listeners.Add(l)
}

func (s *Service) Listeners() []bus.Listener[schema.PV01] {
	return s.listeners.All()
}

// Listener returns the listener to register on the position service.
func (s *Service) Listener() *PositionListener {
	return s.listener
}

// AddPosition rescales the product's static PV01 factor by the aggregate
// position quantity and republishes it.
func (s *Service) AddPosition(pos schema.Position) error {
	factor, err := refdata.PV01(pos.Product.ID)
	if err != nil {
		return err
	}
	s.OnMessage(schema.PV01{
		Product:  pos.Product,
		Value:    factor,
		Quantity: pos.Aggregate(),
	})
	return nil
}

// BucketedRisk sums value times quantity over the sector's members. Products
// with no stored PV01 contribute nothing. The reported quantity is fixed at
// 1; only the value carries the aggregate-sum semantics.
func (s *Service) BucketedRisk(sector schema.BucketedSector) schema.SectorPV01 {
	var total float64
	for _, product := range sector.Products {
		pv, ok := s.pv01s[product.ID]
		if !ok {
			continue
		}
		total += pv.Value * float64(pv.Quantity)
	}
	return schema.SectorPV01{Sector: sector, Value: total, Quantity: 1}
}

// PositionListener feeds position updates into risk derivation.
type PositionListener struct {
	bus.NopListener[schema.Position]
	service *Service
}

func (l *PositionListener) OnAdd(pos schema.Position) {
	// An unknown product cannot reach here through the pipeline; reference
	// data is resolved at ingestion.
	_ = l.service.AddPosition(pos)
}
