package domain

import "time"

// ReturnWindowDays is how long after completion an order remains
// eligible for a return request.
const ReturnWindowDays = 30

// ReturnItem is one returned product line, copied from the order.
// Condition records the state the piece came back in.
type ReturnItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Condition string  `json:"condition,omitempty"`
}

// ReturnReason is why the customer sends the order back, with optional
// evidence references (photo URLs or file keys).
type ReturnReason struct {
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description"`
	Evidence    []string `json:"evidence,omitempty"`
}

// Return is a refund request tied to a completed order.
type Return struct {
	ID              int              `json:"id"`
	Number          string           `json:"number"`
	OrderID         int              `json:"orderId"`
	OrderNumber     string           `json:"orderNumber"`
	Customer        CustomerSnapshot `json:"customer"`
	Items           []ReturnItem     `json:"items"`
	Reason          ReturnReason     `json:"reason"`
	Amount          float64          `json:"amount"`
	Status          ReturnStatus     `json:"status"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	RefundMethod    string           `json:"refundMethod,omitempty"`
	WindowDaysLeft  int              `json:"windowDaysLeft"`
	RequestedAt     time.Time        `json:"requestedAt"`
	ResolvedAt      *time.Time       `json:"resolvedAt,omitempty"`
	RefundedAt      *time.Time       `json:"refundedAt,omitempty"`
}

// Clone returns a deep copy of the return, including its item slice
// and evidence list.
func (r Return) Clone() Return {
	out := r
	out.Items = make([]ReturnItem, len(r.Items))
	copy(out.Items, r.Items)
	out.Reason.Evidence = make([]string, len(r.Reason.Evidence))
	copy(out.Reason.Evidence, r.Reason.Evidence)
	return out
}
