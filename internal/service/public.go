package service

import (
	"context"
	"time"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

// PublicWorkshop is the storefront view of a workshop. The enrollment
// list stays behind the admin API; visitors only see seat counts.
type PublicWorkshop struct {
	ID             int                   `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description,omitempty"`
	Instructor     string                `json:"instructor"`
	Date           time.Time             `json:"date"`
	DurationMin    int                   `json:"durationMin"`
	Capacity       int                   `json:"capacity"`
	SeatsAvailable int                   `json:"seatsAvailable"`
	Price          float64               `json:"price"`
	Location       string                `json:"location,omitempty"`
	Status         domain.WorkshopStatus `json:"status"`
}

func publicWorkshopView(w domain.Workshop) PublicWorkshop {
	return PublicWorkshop{
		ID:             w.ID,
		Name:           w.Name,
		Description:    w.Description,
		Instructor:     w.Instructor,
		Date:           w.Date,
		DurationMin:    w.DurationMin,
		Capacity:       w.Capacity,
		SeatsAvailable: w.Seats(),
		Price:          w.Price,
		Location:       w.Location,
		Status:         w.Status,
	}
}

// PublicProjection is what the storefront sees: visible products and
// workshops, published posts. It is cached because the public site is
// read-heavy and the underlying data changes rarely.
type PublicProjection struct {
	Products  []domain.Product  `json:"products"`
	Workshops []PublicWorkshop  `json:"workshops"`
	Posts     []domain.BlogPost `json:"posts"`
}

const publicCacheKey = "public"

// PublicService serves the cached storefront projection.
type PublicService struct {
	products  port.ProductStore
	workshops port.WorkshopStore
	blog      port.BlogStore
	cache     port.Cache[PublicProjection]
	metrics   *observability.Metrics
}

func NewPublicService(products port.ProductStore, workshops port.WorkshopStore, blog port.BlogStore, cache port.Cache[PublicProjection], metrics *observability.Metrics) *PublicService {
	return &PublicService{
		products:  products,
		workshops: workshops,
		blog:      blog,
		cache:     cache,
		metrics:   metrics,
	}
}

// Projection returns the storefront view, from cache when fresh.
func (s *PublicService) Projection(ctx context.Context) (PublicProjection, error) {
	if p, ok := s.cache.Get(publicCacheKey); ok {
		s.metrics.IncrCacheHit("public")
		return p, nil
	}
	s.metrics.IncrCacheMiss("public")

	products, err := s.products.List(ctx)
	if err != nil {
		return PublicProjection{}, err
	}
	workshops, err := s.workshops.List(ctx)
	if err != nil {
		return PublicProjection{}, err
	}
	posts, err := s.blog.List(ctx)
	if err != nil {
		return PublicProjection{}, err
	}

	p := PublicProjection{
		Products:  make([]domain.Product, 0),
		Workshops: make([]PublicWorkshop, 0),
		Posts:     make([]domain.BlogPost, 0),
	}
	for _, pr := range products {
		if pr.Visible {
			p.Products = append(p.Products, pr)
		}
	}
	for _, w := range workshops {
		if w.Visible {
			p.Workshops = append(p.Workshops, publicWorkshopView(w))
		}
	}
	for _, post := range posts {
		if post.Published {
			p.Posts = append(p.Posts, post)
		}
	}

	s.cache.Set(publicCacheKey, p)
	return p, nil
}
