package domain

import "time"

// OrderItem is one product line within an order. Subtotal is always
// recomputed from quantity and unit price when the order is saved.
type OrderItem struct {
	ProductID int     `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

// CustomerSnapshot is the customer's contact data frozen at the time
// the order was placed, so later profile edits do not rewrite history.
type CustomerSnapshot struct {
	UserID   int    `json:"userId"`
	Name     string `json:"name"`
	Document string `json:"document,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Order is a customer purchase moving through the fulfilment workflow.
type Order struct {
	ID              int              `json:"id"`
	Number          string           `json:"number"`
	Customer        CustomerSnapshot `json:"customer"`
	Items           []OrderItem      `json:"items"`
	Total           float64          `json:"total"`
	Status          OrderStatus      `json:"status"`
	Notes           string           `json:"notes,omitempty"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
	PaymentProof    string           `json:"paymentProof,omitempty"`
	RejectionReason string           `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	ConfirmedAt     *time.Time       `json:"confirmedAt,omitempty"`
	StartedAt       *time.Time       `json:"startedAt,omitempty"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
}

// ComputeTotal recalculates every item subtotal and the order total.
func (o *Order) ComputeTotal() {
	var total float64
	for i := range o.Items {
		o.Items[i].Subtotal = float64(o.Items[i].Quantity) * o.Items[i].UnitPrice
		total += o.Items[i].Subtotal
	}
	o.Total = total
}

// Clone returns a deep copy of the order, including its item slice.
// Edit dialogs work on a clone so cancelling discards every change.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	return out
}
