package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/export"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

// DefaultQuoteValidity is how long a priced quote stays open before it
// can be expired.
const DefaultQuoteValidity = 15 * 24 * time.Hour

// QuoteService runs the custom-work quote workflow.
type QuoteService struct {
	store    port.QuoteStore
	notifier port.Notifier
	metrics  *observability.Metrics
	logger   *zap.Logger
	baseURL  string
}

func NewQuoteService(store port.QuoteStore, notifier port.Notifier, metrics *observability.Metrics, baseURL string, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (s *QuoteService) List(ctx context.Context) ([]domain.Quote, error) {
	return s.store.List(ctx)
}

func (s *QuoteService) Get(ctx context.Context, id int) (domain.Quote, error) {
	return s.store.Get(ctx, id)
}

// Create registers a new quote request.
func (s *QuoteService) Create(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	if strings.TrimSpace(q.CustomerName) == "" {
		return domain.Quote{}, &domain.ErrValidation{Field: "customerName", Message: "required"}
	}
	if !strings.Contains(q.CustomerEmail, "@") {
		return domain.Quote{}, &domain.ErrValidation{Field: "customerEmail", Message: "invalid email"}
	}
	if strings.TrimSpace(q.Description) == "" {
		return domain.Quote{}, &domain.ErrValidation{Field: "description", Message: "required"}
	}
	if q.Quantity <= 0 {
		return domain.Quote{}, &domain.ErrValidation{Field: "quantity", Message: "must be positive"}
	}

	q.Number = s.store.NextNumber()
	q.Status = domain.QuotePending
	q.UnitPrice = 0
	q.Total = 0
	q.RequestedAt = time.Now()

	created, err := s.store.Create(ctx, q)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("creating quote: %w", err)
	}
	s.logger.Info("quote requested", zap.String("number", created.Number))
	return created, nil
}

// Update replaces the editable fields. Totals are recomputed, so a
// quantity edit on a priced quote changes the total on save.
func (s *QuoteService) Update(ctx context.Context, q domain.Quote) (domain.Quote, error) {
	current, err := s.store.Get(ctx, q.ID)
	if err != nil {
		return domain.Quote{}, err
	}
	if current.Status.Terminal() {
		return domain.Quote{}, &domain.ErrValidation{Field: "status", Message: "quote is already closed"}
	}
	if q.Quantity <= 0 {
		return domain.Quote{}, &domain.ErrValidation{Field: "quantity", Message: "must be positive"}
	}

	q.Number = current.Number
	q.Status = current.Status
	q.UnitPrice = current.UnitPrice
	q.RequestedAt = current.RequestedAt
	q.QuotedAt = current.QuotedAt
	q.ValidUntil = current.ValidUntil
	q.ResolvedAt = current.ResolvedAt
	q.ComputeTotal()

	return s.store.Update(ctx, q)
}

func (s *QuoteService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

// SetPrice prices a pending quote and moves it to Cotizada. The total
// becomes quantity times unit price and a validity window opens.
func (s *QuoteService) SetPrice(ctx context.Context, id int, unitPrice float64, notes string) (domain.Quote, error) {
	if unitPrice <= 0 {
		return domain.Quote{}, &domain.ErrValidation{Field: "unitPrice", Message: "must be positive"}
	}
	return s.transition(ctx, id, domain.QuoteQuoted, func(q *domain.Quote, now time.Time) {
		q.UnitPrice = unitPrice
		q.ComputeTotal()
		if notes != "" {
			q.Notes = notes
		}
		q.QuotedAt = &now
		until := now.Add(DefaultQuoteValidity)
		q.ValidUntil = &until
	})
}

// Approve moves a priced quote to Aprobada.
func (s *QuoteService) Approve(ctx context.Context, id int) (domain.Quote, error) {
	return s.transition(ctx, id, domain.QuoteApproved, func(q *domain.Quote, now time.Time) {
		q.ResolvedAt = &now
	})
}

// Reject declines a quote, priced or still pending.
func (s *QuoteService) Reject(ctx context.Context, id int) (domain.Quote, error) {
	return s.transition(ctx, id, domain.QuoteRejected, func(q *domain.Quote, now time.Time) {
		q.ResolvedAt = &now
	})
}

// ExpireSweep moves every quote past its validity date to Vencida and
// returns how many were expired.
func (s *QuoteService) ExpireSweep(ctx context.Context) (int, error) {
	quotes, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing quotes: %w", err)
	}
	now := time.Now()
	expired := 0
	for _, q := range quotes {
		if !q.Expirable(now) {
			continue
		}
		if _, err := s.transition(ctx, q.ID, domain.QuoteExpired, func(q *domain.Quote, now time.Time) {
			q.ResolvedAt = &now
		}); err != nil {
			s.logger.Error("expiring quote", zap.String("number", q.Number), zap.Error(err))
			continue
		}
		expired++
	}
	if expired > 0 {
		s.logger.Info("expired quotes", zap.Int("count", expired))
	}
	return expired, nil
}

// Document renders the printable HTML document for a priced quote.
func (s *QuoteService) Document(ctx context.Context, id int, preparedBy string) ([]byte, error) {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status == domain.QuotePending {
		return nil, &domain.ErrValidation{Field: "status", Message: "quote has not been priced"}
	}
	reviewURL := fmt.Sprintf("%s/v1/quotes/%d", s.baseURL, q.ID)
	doc, err := export.QuoteDocument(q, preparedBy, reviewURL)
	if err != nil {
		return nil, fmt.Errorf("rendering quote %s: %w", q.Number, err)
	}
	return doc, nil
}

func (s *QuoteService) transition(ctx context.Context, id int, to domain.QuoteStatus, apply func(*domain.Quote, time.Time)) (domain.Quote, error) {
	q, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Quote{}, err
	}
	from := q.Status
	if !from.CanTransition(to) {
		return domain.Quote{}, &domain.ErrInvalidTransition{
			Entity: "quote", ID: strconv.Itoa(id),
			From: string(from), To: string(to),
		}
	}

	now := time.Now()
	q.Status = to
	if apply != nil {
		apply(&q, now)
	}

	updated, err := s.store.Update(ctx, q)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("applying quote transition: %w", err)
	}

	s.metrics.RecordTransition("quote", string(from), string(to))
	s.notifier.Publish(domain.TransitionEvent{
		EventID: uuid.NewString(),
		Entity:  "quote",
		ID:      updated.ID,
		Number:  updated.Number,
		From:    string(from),
		To:      string(to),
		At:      now,
	})
	s.logger.Info("quote transition",
		zap.String("number", updated.Number),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return updated, nil
}
