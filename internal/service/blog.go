package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

// BlogService manages blog posts and their publication state.
type BlogService struct {
	store  port.BlogStore
	flush  func()
	logger *zap.Logger
}

func NewBlogService(store port.BlogStore, flush func(), logger *zap.Logger) *BlogService {
	if flush == nil {
		flush = func() {}
	}
	return &BlogService{store: store, flush: flush, logger: logger}
}

func (s *BlogService) List(ctx context.Context) ([]domain.BlogPost, error) {
	return s.store.List(ctx)
}

func (s *BlogService) Get(ctx context.Context, id int) (domain.BlogPost, error) {
	return s.store.Get(ctx, id)
}

func (s *BlogService) Create(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	if err := validatePost(p); err != nil {
		return domain.BlogPost{}, err
	}
	p.Published = false
	p.PublishedAt = nil
	p.CreatedAt = time.Now()

	created, err := s.store.Create(ctx, p)
	if err != nil {
		return domain.BlogPost{}, err
	}
	s.logger.Info("post created", zap.Int("post_id", created.ID))
	return created, nil
}

func (s *BlogService) Update(ctx context.Context, p domain.BlogPost) (domain.BlogPost, error) {
	if err := validatePost(p); err != nil {
		return domain.BlogPost{}, err
	}
	current, err := s.store.Get(ctx, p.ID)
	if err != nil {
		return domain.BlogPost{}, err
	}
	p.Published = current.Published
	p.PublishedAt = current.PublishedAt
	p.CreatedAt = current.CreatedAt

	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return domain.BlogPost{}, err
	}
	s.flush()
	return updated, nil
}

func (s *BlogService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.flush()
	return nil
}

// Publish makes the post visible on the public site.
func (s *BlogService) Publish(ctx context.Context, id int) (domain.BlogPost, error) {
	return s.setPublished(ctx, id, true)
}

// Unpublish hides the post from the public site.
func (s *BlogService) Unpublish(ctx context.Context, id int) (domain.BlogPost, error) {
	return s.setPublished(ctx, id, false)
}

func (s *BlogService) setPublished(ctx context.Context, id int, published bool) (domain.BlogPost, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.BlogPost{}, err
	}
	p.Published = published
	if published {
		now := time.Now()
		p.PublishedAt = &now
	} else {
		p.PublishedAt = nil
	}
	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return domain.BlogPost{}, err
	}
	s.flush()
	s.logger.Info("post publication changed",
		zap.Int("post_id", updated.ID),
		zap.Bool("published", published),
	)
	return updated, nil
}

func validatePost(p domain.BlogPost) error {
	if strings.TrimSpace(p.Title) == "" {
		return &domain.ErrValidation{Field: "title", Message: "required"}
	}
	if strings.TrimSpace(p.Content) == "" {
		return &domain.ErrValidation{Field: "content", Message: "required"}
	}
	return nil
}
