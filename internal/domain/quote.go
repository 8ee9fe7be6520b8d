package domain

import "time"

// Quote is a custom-work request priced by the workshop team. Total is
// always quantity times unit price once a price has been set.
type Quote struct {
	ID            int         `json:"id"`
	Number        string      `json:"number"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Description   string      `json:"description"`
	Budget        string      `json:"budget,omitempty"`
	Timeline      string      `json:"timeline,omitempty"`
	Service       string      `json:"service,omitempty"`
	Quantity      int         `json:"quantity"`
	UnitPrice     float64     `json:"unitPrice"`
	Total         float64     `json:"total"`
	Status        QuoteStatus `json:"status"`
	Notes         string      `json:"notes,omitempty"`
	Attachments   []string    `json:"attachments,omitempty"`
	RequestedAt   time.Time   `json:"requestedAt"`
	QuotedAt      *time.Time  `json:"quotedAt,omitempty"`
	ValidUntil    *time.Time  `json:"validUntil,omitempty"`
	ResolvedAt    *time.Time  `json:"resolvedAt,omitempty"`
}

// Clone returns a deep copy of the quote, including its attachments.
func (q Quote) Clone() Quote {
	out := q
	out.Attachments = make([]string, len(q.Attachments))
	copy(out.Attachments, q.Attachments)
	return out
}

// ComputeTotal recalculates the quote total from quantity and price.
func (q *Quote) ComputeTotal() {
	q.Total = float64(q.Quantity) * q.UnitPrice
}

// Expirable reports whether the quote can still move to Vencida and
// its validity date has passed.
func (q Quote) Expirable(now time.Time) bool {
	if !q.Status.CanTransition(QuoteExpired) {
		return false
	}
	return q.ValidUntil != nil && now.After(*q.ValidUntil)
}
