package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

// Store adapts a collection to the CRUD port, translating misses into
// typed not-found errors.
type Store[T any] struct {
	name string
	coll *collection[T]
}

func newStore[T any](name string, getID func(T) int, setID func(T, int) T, clone func(T) T) *Store[T] {
	return &Store[T]{name: name, coll: newCollection(getID, setID, clone)}
}

func (s *Store[T]) List(_ context.Context) ([]T, error) {
	return s.coll.List(), nil
}

func (s *Store[T]) Get(_ context.Context, id int) (T, error) {
	item, ok := s.coll.Get(id)
	if !ok {
		var zero T
		return zero, &domain.ErrNotFound{Resource: s.name, ID: strconv.Itoa(id)}
	}
	return item, nil
}

func (s *Store[T]) Create(_ context.Context, item T) (T, error) {
	return s.coll.Add(item), nil
}

func (s *Store[T]) Update(_ context.Context, item T) (T, error) {
	updated, ok := s.coll.Update(item)
	if !ok {
		var zero T
		return zero, &domain.ErrNotFound{Resource: s.name, ID: strconv.Itoa(s.coll.getID(item))}
	}
	return updated, nil
}

func (s *Store[T]) Delete(_ context.Context, id int) error {
	if !s.coll.Delete(id) {
		return &domain.ErrNotFound{Resource: s.name, ID: strconv.Itoa(id)}
	}
	return nil
}

// Len returns the number of stored records.
func (s *Store[T]) Len() int {
	return s.coll.Len()
}

// sequence issues document numbers like ORD-2026-001.
type sequence struct {
	prefix  string
	counter atomic.Int64
}

func (s *sequence) next() string {
	n := s.counter.Add(1)
	return fmt.Sprintf("%s-%d-%03d", s.prefix, time.Now().Year(), n)
}

// UserStore is the in-memory user collection.
type UserStore struct {
	*Store[domain.User]
}

func NewUserStore() *UserStore {
	return &UserStore{Store: newStore("user",
		func(u domain.User) int { return u.ID },
		func(u domain.User, id int) domain.User { u.ID = id; return u },
		nil)}
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := s.coll.Find(func(u domain.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !ok {
		return domain.User{}, &domain.ErrNotFound{Resource: "user", ID: email}
	}
	return u, nil
}

// NewEmployeeStore builds the in-memory staff collection.
func NewEmployeeStore() *Store[domain.Employee] {
	return newStore("employee",
		func(e domain.Employee) int { return e.ID },
		func(e domain.Employee, id int) domain.Employee { e.ID = id; return e },
		nil)
}

// NewProductStore builds the in-memory product collection.
func NewProductStore() *Store[domain.Product] {
	return newStore("product",
		func(p domain.Product) int { return p.ID },
		func(p domain.Product, id int) domain.Product { p.ID = id; return p },
		nil)
}

// NewMaterialStore builds the in-memory raw-material collection.
func NewMaterialStore() *Store[domain.RawMaterial] {
	return newStore("material",
		func(m domain.RawMaterial) int { return m.ID },
		func(m domain.RawMaterial, id int) domain.RawMaterial { m.ID = id; return m },
		nil)
}

// NewServiceStore builds the in-memory service collection.
func NewServiceStore() *Store[domain.Service] {
	return newStore("service",
		func(s domain.Service) int { return s.ID },
		func(s domain.Service, id int) domain.Service { s.ID = id; return s },
		nil)
}

// OrderStore is the in-memory order collection with numbering.
type OrderStore struct {
	*Store[domain.Order]
	seq sequence
}

func NewOrderStore() *OrderStore {
	s := &OrderStore{Store: newStore("order",
		func(o domain.Order) int { return o.ID },
		func(o domain.Order, id int) domain.Order { o.ID = id; return o },
		domain.Order.Clone)}
	s.seq.prefix = "ORD"
	return s
}

func (s *OrderStore) NextNumber() string { return s.seq.next() }

// ReturnStore is the in-memory return collection with numbering.
type ReturnStore struct {
	*Store[domain.Return]
	seq sequence
}

func NewReturnStore() *ReturnStore {
	s := &ReturnStore{Store: newStore("return",
		func(r domain.Return) int { return r.ID },
		func(r domain.Return, id int) domain.Return { r.ID = id; return r },
		domain.Return.Clone)}
	s.seq.prefix = "DEV"
	return s
}

func (s *ReturnStore) NextNumber() string { return s.seq.next() }

// QuoteStore is the in-memory quote collection with numbering.
type QuoteStore struct {
	*Store[domain.Quote]
	seq sequence
}

func NewQuoteStore() *QuoteStore {
	s := &QuoteStore{Store: newStore("quote",
		func(q domain.Quote) int { return q.ID },
		func(q domain.Quote, id int) domain.Quote { q.ID = id; return q },
		domain.Quote.Clone)}
	s.seq.prefix = "COT"
	return s
}

func (s *QuoteStore) NextNumber() string { return s.seq.next() }

// NewWorkshopStore builds the in-memory workshop collection.
func NewWorkshopStore() *Store[domain.Workshop] {
	return newStore("workshop",
		func(w domain.Workshop) int { return w.ID },
		func(w domain.Workshop, id int) domain.Workshop { w.ID = id; return w },
		domain.Workshop.Clone)
}

// NewBlogStore builds the in-memory blog collection.
func NewBlogStore() *Store[domain.BlogPost] {
	return newStore("post",
		func(p domain.BlogPost) int { return p.ID },
		func(p domain.BlogPost, id int) domain.BlogPost { p.ID = id; return p },
		domain.BlogPost.Clone)
}
