package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

func newQuoteFixture(t *testing.T) (*service.QuoteService, *memory.Stores) {
	t.Helper()
	stores := memory.NewStores()
	svc := service.NewQuoteService(stores.Quotes, &captureNotifier{}, observability.NewMetrics(), "http://localhost:8080", zap.NewNop())
	return svc, stores
}

func createQuote(t *testing.T, svc *service.QuoteService) domain.Quote {
	t.Helper()
	q, err := svc.Create(context.Background(), domain.Quote{
		CustomerName:  "Laura Mesa",
		CustomerEmail: "laura@example.com",
		CustomerPhone: "3109876543",
		Description:   "Kit DIY de macramé personalizado",
		Service:       "Personalización",
		Budget:        "200000-300000",
		Timeline:      "2 semanas",
		Attachments:   []string{"uploads/referencia.jpg"},
		Quantity:      3,
	})
	require.NoError(t, err)
	return q
}

func TestQuoteCreateStartsPendingWithoutPrice(t *testing.T) {
	svc, _ := newQuoteFixture(t)
	q := createQuote(t, svc)

	assert.Equal(t, domain.QuotePending, q.Status)
	assert.Zero(t, q.UnitPrice)
	assert.Zero(t, q.Total)
	assert.Equal(t, "Personalización", q.Service)
	assert.Equal(t, "200000-300000", q.Budget)
	assert.Equal(t, []string{"uploads/referencia.jpg"}, q.Attachments)
	assert.Regexp(t, `^COT-\d{4}-001$`, q.Number)
}

func TestQuoteSetPriceComputesTotalAndValidity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuoteFixture(t)
	q := createQuote(t, svc)

	priced, err := svc.SetPrice(ctx, q.ID, 35000, "incluye envío")
	require.NoError(t, err)

	assert.Equal(t, domain.QuoteQuoted, priced.Status)
	assert.Equal(t, float64(105000), priced.Total)
	require.NotNil(t, priced.QuotedAt)
	require.NotNil(t, priced.ValidUntil)
	assert.WithinDuration(t, priced.QuotedAt.Add(service.DefaultQuoteValidity), *priced.ValidUntil, time.Second)
}

func TestQuoteUpdateRecomputesTotalOnQuantityEdit(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuoteFixture(t)
	q := createQuote(t, svc)

	priced, err := svc.SetPrice(ctx, q.ID, 35000, "")
	require.NoError(t, err)

	edited := priced
	edited.Quantity = 2
	edited.UnitPrice = 1 // must be ignored, price is workflow-owned

	updated, err := svc.Update(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, float64(70000), updated.Total)
	assert.Equal(t, float64(35000), updated.UnitPrice)
	assert.Equal(t, domain.QuoteQuoted, updated.Status)
}

func TestQuoteApproveRequiresPrice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuoteFixture(t)
	q := createQuote(t, svc)

	_, err := svc.Approve(ctx, q.ID)
	var invalid *domain.ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Pendiente", invalid.From)

	_, err = svc.SetPrice(ctx, q.ID, 35000, "")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteApproved, approved.Status)
	require.NotNil(t, approved.ResolvedAt)
}

func TestQuoteRejectWhilePending(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuoteFixture(t)
	q := createQuote(t, svc)

	// Declining a request needs no price first.
	rejected, err := svc.Reject(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteRejected, rejected.Status)
	require.NotNil(t, rejected.ResolvedAt)

	_, err = svc.SetPrice(ctx, q.ID, 35000, "")
	var invalid *domain.ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Rechazada", invalid.From)
}

func TestQuoteExpireSweep(t *testing.T) {
	ctx := context.Background()
	svc, stores := newQuoteFixture(t)

	stale := createQuote(t, svc)
	fresh := createQuote(t, svc)

	_, err := svc.SetPrice(ctx, stale.ID, 20000, "")
	require.NoError(t, err)
	_, err = svc.SetPrice(ctx, fresh.ID, 20000, "")
	require.NoError(t, err)

	// Backdate the first quote past its validity window.
	backdated, err := stores.Quotes.Get(ctx, stale.ID)
	require.NoError(t, err)
	past := time.Now().Add(-time.Hour)
	backdated.ValidUntil = &past
	_, err = stores.Quotes.Update(ctx, backdated)
	require.NoError(t, err)

	count, err := svc.ExpireSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := svc.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteExpired, got.Status)

	kept, err := svc.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuoteQuoted, kept.Status)
}

func TestQuoteDocumentRejectsUnpriced(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuoteFixture(t)
	q := createQuote(t, svc)

	_, err := svc.Document(ctx, q.ID, "Isabella")
	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)

	_, err = svc.SetPrice(ctx, q.ID, 35000, "")
	require.NoError(t, err)

	doc, err := svc.Document(ctx, q.ID, "Isabella")
	require.NoError(t, err)
	assert.Contains(t, string(doc), q.Number)
	assert.Contains(t, string(doc), "data:image/png;base64,")
}
