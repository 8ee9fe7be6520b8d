package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

func newProducts(t *testing.T, names ...string) *Store[domain.Product] {
	t.Helper()
	s := NewProductStore()
	for _, n := range names {
		_, err := s.Create(context.Background(), domain.Product{Name: n, Visible: true})
		require.NoError(t, err)
	}
	return s
}

func TestStoreCreateAssignsSequentialIDs(t *testing.T) {
	s := newProducts(t, "Tapiz", "Colgante", "Kit")
	items, err := s.List(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[2].ID)
}

func TestStoreIDsNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	s := newProducts(t, "Tapiz", "Colgante")

	require.NoError(t, s.Delete(ctx, 2))
	created, err := s.Create(ctx, domain.Product{Name: "Kit"})
	require.NoError(t, err)

	// Max existing ID is 1, so the new record gets 2 again only if 2 was
	// the tail; delete the head to check the max+1 rule instead.
	assert.Equal(t, 2, created.ID)

	require.NoError(t, s.Delete(ctx, 1))
	next, err := s.Create(ctx, domain.Product{Name: "Llavero"})
	require.NoError(t, err)
	assert.Equal(t, 3, next.ID, "new ID must be max existing + 1, not a reused hole")
}

func TestStoreGetUnknownID(t *testing.T) {
	s := newProducts(t, "Tapiz")
	_, err := s.Get(context.Background(), 42)

	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestStoreUpdateUnknownIDInsertsNothing(t *testing.T) {
	ctx := context.Background()
	s := newProducts(t, "Tapiz")

	_, err := s.Update(ctx, domain.Product{ID: 42, Name: "Fantasma"})
	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestStoreUpdateReplacesRecord(t *testing.T) {
	ctx := context.Background()
	s := newProducts(t, "Tapiz")

	updated, err := s.Update(ctx, domain.Product{ID: 1, Name: "Tapiz grande", Price: 120000})
	require.NoError(t, err)
	assert.Equal(t, "Tapiz grande", updated.Name)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, float64(120000), got.Price)
}

func TestStoreDeleteRemovesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	s := newProducts(t, "Tapiz", "Colgante", "Kit")

	require.NoError(t, s.Delete(ctx, 2))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 3, items[1].ID)
}

func TestCollectionCopiesOnReadForCloneTypes(t *testing.T) {
	ctx := context.Background()
	s := NewWorkshopStore()
	created, err := s.Create(ctx, domain.Workshop{
		Name: "Macramé", Instructor: "Carlos", Capacity: 5,
		Status:      domain.WorkshopScheduled,
		Enrollments: []domain.Enrollment{{UserID: 1, UserName: "Ana"}},
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	got.Enrollments[0].UserName = "Mutado"

	again, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Enrollments[0].UserName,
		"mutating a read result must not leak into the store")
}

func TestFilterCaseInsensitiveOverFields(t *testing.T) {
	items := []domain.User{
		{Name: "Ana García", Email: "ana@example.com"},
		{Name: "Carlos Mendoza", Email: "carlos@nudostudio.co"},
	}
	fields := func(u domain.User) []string { return []string{u.Name, u.Email} }

	assert.Len(t, Filter(items, "GARCÍA", fields), 1)
	assert.Len(t, Filter(items, "nudostudio", fields), 1)
	assert.Len(t, Filter(items, "zzz", fields), 0)
	assert.Len(t, Filter(items, "  ", fields), 2, "blank term keeps everything")
}

func TestPaginateWindowsAndClamps(t *testing.T) {
	items := make([]int, 14)
	for i := range items {
		items[i] = i + 1
	}

	page1, served := Paginate(items, 1, 6)
	assert.Equal(t, 1, served)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, page1)

	page3, served := Paginate(items, 3, 6)
	assert.Equal(t, 3, served)
	assert.Equal(t, []int{13, 14}, page3)

	clamped, served := Paginate(items, 99, 6)
	assert.Equal(t, 3, served, "out-of-range page is clamped to the last page")
	assert.Equal(t, []int{13, 14}, clamped)

	first, served := Paginate(items, 0, 6)
	assert.Equal(t, 1, served)
	assert.Len(t, first, 6)
}

func TestPaginateEmpty(t *testing.T) {
	window, served := Paginate([]int{}, 5, 6)
	assert.Equal(t, 1, served)
	assert.Empty(t, window)
}

func TestSequenceNumberFormat(t *testing.T) {
	s := NewOrderStore()
	first := s.NextNumber()
	second := s.NextNumber()

	assert.Regexp(t, `^ORD-\d{4}-001$`, first)
	assert.Regexp(t, `^ORD-\d{4}-002$`, second)

	q := NewQuoteStore()
	assert.Regexp(t, `^COT-\d{4}-001$`, q.NextNumber())
}

func TestUserStoreGetByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()
	_, err := s.Create(ctx, domain.User{Name: "Ana", Email: "ana@example.com", Role: domain.RoleClient})
	require.NoError(t, err)

	u, err := s.GetByEmail(ctx, "ANA@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = s.GetByEmail(ctx, "nadie@example.com")
	var notFound *domain.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}
