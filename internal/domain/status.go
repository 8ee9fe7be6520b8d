package domain

// Status workflows. Every record of a workflow entity carries a typed
// status; transitions are validated against the tables below and any
// step not present in a table is rejected. Transitions are one-way:
// terminal statuses have no outgoing edges and a workflow never moves
// back to an earlier status.

// OrderStatus is the fulfilment status of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pendiente"
	OrderConfirmed OrderStatus = "Confirmado"
	OrderRejected  OrderStatus = "Rechazado"
	OrderInProcess OrderStatus = "En Proceso"
	OrderCompleted OrderStatus = "Completado"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderRejected},
	OrderConfirmed: {OrderInProcess},
	OrderInProcess: {OrderCompleted},
}

// ReturnStatus is the review status of a return request.
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "Pendiente"
	ReturnApproved  ReturnStatus = "Aprobada"
	ReturnRejected  ReturnStatus = "Rechazada"
	ReturnProcessed ReturnStatus = "Procesada"
	ReturnRefunded  ReturnStatus = "Reembolsada"
)

var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnPending:  {ReturnApproved, ReturnRejected},
	ReturnApproved: {ReturnProcessed, ReturnRefunded},
}

// QuoteStatus is the lifecycle status of a custom-work quote.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "Pendiente"
	QuoteQuoted   QuoteStatus = "Cotizada"
	QuoteApproved QuoteStatus = "Aprobada"
	QuoteRejected QuoteStatus = "Rechazada"
	QuoteExpired  QuoteStatus = "Vencida"
)

var quoteTransitions = map[QuoteStatus][]QuoteStatus{
	QuotePending: {QuoteQuoted, QuoteRejected, QuoteExpired},
	QuoteQuoted:  {QuoteApproved, QuoteRejected, QuoteExpired},
}

// WorkshopStatus is the scheduling status of a workshop session.
type WorkshopStatus string

const (
	WorkshopScheduled  WorkshopStatus = "Programado"
	WorkshopInProgress WorkshopStatus = "En progreso"
	WorkshopCompleted  WorkshopStatus = "Completado"
	WorkshopCancelled  WorkshopStatus = "Cancelado"
)

var workshopTransitions = map[WorkshopStatus][]WorkshopStatus{
	WorkshopScheduled:  {WorkshopInProgress, WorkshopCancelled},
	WorkshopInProgress: {WorkshopCompleted, WorkshopCancelled},
}

func canStep[S comparable](table map[S][]S, from, to S) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func nextStates[S comparable](table map[S][]S, from S) []S {
	out := make([]S, len(table[from]))
	copy(out, table[from])
	return out
}

// CanTransition reports whether the order workflow allows from -> to.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return canStep(orderTransitions, s, to)
}

// Next returns the statuses reachable in one step.
func (s OrderStatus) Next() []OrderStatus { return nextStates(orderTransitions, s) }

// Terminal reports whether the status has no outgoing transitions.
func (s OrderStatus) Terminal() bool { return len(orderTransitions[s]) == 0 }

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderRejected, OrderInProcess, OrderCompleted:
		return true
	}
	return false
}

func (s ReturnStatus) CanTransition(to ReturnStatus) bool {
	return canStep(returnTransitions, s, to)
}

func (s ReturnStatus) Next() []ReturnStatus { return nextStates(returnTransitions, s) }

func (s ReturnStatus) Terminal() bool { return len(returnTransitions[s]) == 0 }

func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnPending, ReturnApproved, ReturnRejected, ReturnProcessed, ReturnRefunded:
		return true
	}
	return false
}

func (s QuoteStatus) CanTransition(to QuoteStatus) bool {
	return canStep(quoteTransitions, s, to)
}

func (s QuoteStatus) Next() []QuoteStatus { return nextStates(quoteTransitions, s) }

func (s QuoteStatus) Terminal() bool { return len(quoteTransitions[s]) == 0 }

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuotePending, QuoteQuoted, QuoteApproved, QuoteRejected, QuoteExpired:
		return true
	}
	return false
}

func (s WorkshopStatus) CanTransition(to WorkshopStatus) bool {
	return canStep(workshopTransitions, s, to)
}

func (s WorkshopStatus) Next() []WorkshopStatus { return nextStates(workshopTransitions, s) }

func (s WorkshopStatus) Terminal() bool { return len(workshopTransitions[s]) == 0 }

func (s WorkshopStatus) Valid() bool {
	switch s {
	case WorkshopScheduled, WorkshopInProgress, WorkshopCompleted, WorkshopCancelled:
		return true
	}
	return false
}
