package model

import (
	"buildcost-premium/internal/domain"
)

// Plan is a purchasable premium tier with a fixed server-side price in
// paise. Plans are defined at deploy time and never accepted from clients.
type Plan struct {
	ID          string
	AmountPaise int64
	Currency    string
	Term        string
}

func (p *Plan) IsZero() bool { return p == nil || p.ID == "" }

// NewPlan validates and constructs a plan.
func NewPlan(id string, amountPaise int64, currency, term string) (*Plan, error) {
	if id == "" || amountPaise <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if currency == "" {
		currency = "INR"
	}
	return &Plan{ID: id, AmountPaise: amountPaise, Currency: currency, Term: term}, nil
}

// PlanRegistry is the single source of truth for plan prices. It is built
// once at startup and read-only afterwards, so it is safe to share without
// synchronization.
type PlanRegistry struct {
	plans map[string]*Plan
}

func NewPlanRegistry(plans []*Plan) (*PlanRegistry, error) {
	if len(plans) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	m := make(map[string]*Plan, len(plans))
	for _, p := range plans {
		if p.IsZero() || p.AmountPaise <= 0 {
			return nil, domain.ErrInvalidArgument
		}
		if _, dup := m[p.ID]; dup {
			return nil, domain.ErrInvalidArgument
		}
		m[p.ID] = p
	}
	return &PlanRegistry{plans: m}, nil
}

// Get returns the plan for id. Unknown ids are rejected, never defaulted.
func (r *PlanRegistry) Get(id string) (*Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, domain.ErrInvalidPlan
	}
	return p, nil
}

// PriceFor resolves the authoritative price for a plan id in paise.
func (r *PlanRegistry) PriceFor(id string) (int64, error) {
	p, err := r.Get(id)
	if err != nil {
		return 0, err
	}
	return p.AmountPaise, nil
}

func (r *PlanRegistry) List() []*Plan {
	out := make([]*Plan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	return out
}
