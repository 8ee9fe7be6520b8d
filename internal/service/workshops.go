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

// WorkshopService manages workshop sessions and their enrollments.
type WorkshopService struct {
	store    port.WorkshopStore
	users    port.UserStore
	notifier port.Notifier
	metrics  *observability.Metrics
	flush    func()
	logger   *zap.Logger
}

func NewWorkshopService(store port.WorkshopStore, users port.UserStore, notifier port.Notifier, metrics *observability.Metrics, flush func(), logger *zap.Logger) *WorkshopService {
	if flush == nil {
		flush = func() {}
	}
	return &WorkshopService{
		store:    store,
		users:    users,
		notifier: notifier,
		metrics:  metrics,
		flush:    flush,
		logger:   logger,
	}
}

func (s *WorkshopService) List(ctx context.Context) ([]domain.Workshop, error) {
	return s.store.List(ctx)
}

func (s *WorkshopService) Get(ctx context.Context, id int) (domain.Workshop, error) {
	return s.store.Get(ctx, id)
}

func (s *WorkshopService) Create(ctx context.Context, w domain.Workshop) (domain.Workshop, error) {
	if err := validateWorkshop(w); err != nil {
		return domain.Workshop{}, err
	}
	w.Status = domain.WorkshopScheduled
	w.Enrollments = []domain.Enrollment{}

	created, err := s.store.Create(ctx, w)
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("creating workshop: %w", err)
	}
	s.flush()
	s.logger.Info("workshop created", zap.Int("workshop_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Update replaces the editable fields. Status and the enrollment list
// are preserved; capacity cannot drop below current enrollment.
func (s *WorkshopService) Update(ctx context.Context, w domain.Workshop) (domain.Workshop, error) {
	if err := validateWorkshop(w); err != nil {
		return domain.Workshop{}, err
	}
	current, err := s.store.Get(ctx, w.ID)
	if err != nil {
		return domain.Workshop{}, err
	}
	if w.Capacity < len(current.Enrollments) {
		return domain.Workshop{}, &domain.ErrValidation{
			Field:   "capacity",
			Message: fmt.Sprintf("cannot be below current enrollment (%d)", len(current.Enrollments)),
		}
	}
	w.Status = current.Status
	w.Enrollments = current.Enrollments

	updated, err := s.store.Update(ctx, w)
	if err != nil {
		return domain.Workshop{}, err
	}
	s.flush()
	return updated, nil
}

func (s *WorkshopService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.flush()
	return nil
}

// ToggleVisible flips whether the workshop appears on the public site.
func (s *WorkshopService) ToggleVisible(ctx context.Context, id int) (domain.Workshop, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Workshop{}, err
	}
	w.Visible = !w.Visible
	updated, err := s.store.Update(ctx, w)
	if err != nil {
		return domain.Workshop{}, err
	}
	s.flush()
	return updated, nil
}

// Enroll seats a registered user in the workshop. Full workshops and
// duplicate enrollments are rejected, and only open workshops accept
// students.
func (s *WorkshopService) Enroll(ctx context.Context, workshopID, userID int) (domain.Workshop, error) {
	w, err := s.store.Get(ctx, workshopID)
	if err != nil {
		return domain.Workshop{}, err
	}
	if w.Status != domain.WorkshopScheduled {
		return domain.Workshop{}, &domain.ErrValidation{Field: "status", Message: "workshop is not open for enrollment"}
	}
	if w.Enrolled(userID) {
		return domain.Workshop{}, &domain.ErrConflict{Message: "user already enrolled"}
	}
	if w.Seats() <= 0 {
		return domain.Workshop{}, &domain.ErrCapacityFull{WorkshopID: w.ID, Capacity: w.Capacity}
	}

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.Workshop{}, err
	}

	w.Enrollments = append(w.Enrollments, domain.Enrollment{
		UserID:       user.ID,
		UserName:     user.Name,
		Email:        user.Email,
		EnrolledDate: time.Now(),
	})
	updated, err := s.store.Update(ctx, w)
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("saving enrollment: %w", err)
	}
	s.flush()
	s.logger.Info("enrollment added",
		zap.Int("workshop_id", updated.ID),
		zap.Int("user_id", user.ID),
		zap.Int("seats_left", updated.Seats()),
	)
	return updated, nil
}

// Unenroll frees the user's seat.
func (s *WorkshopService) Unenroll(ctx context.Context, workshopID, userID int) (domain.Workshop, error) {
	w, err := s.store.Get(ctx, workshopID)
	if err != nil {
		return domain.Workshop{}, err
	}
	found := false
	kept := w.Enrollments[:0]
	for _, e := range w.Enrollments {
		if e.UserID == userID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return domain.Workshop{}, &domain.ErrNotFound{Resource: "enrollment", ID: strconv.Itoa(userID)}
	}
	w.Enrollments = kept

	updated, err := s.store.Update(ctx, w)
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("removing enrollment: %w", err)
	}
	s.flush()
	return updated, nil
}

// Start moves a scheduled workshop to En progreso.
func (s *WorkshopService) Start(ctx context.Context, id int) (domain.Workshop, error) {
	return s.transition(ctx, id, domain.WorkshopInProgress)
}

// Complete moves a running workshop to Completado.
func (s *WorkshopService) Complete(ctx context.Context, id int) (domain.Workshop, error) {
	return s.transition(ctx, id, domain.WorkshopCompleted)
}

// Cancel moves a scheduled or running workshop to Cancelado.
func (s *WorkshopService) Cancel(ctx context.Context, id int) (domain.Workshop, error) {
	return s.transition(ctx, id, domain.WorkshopCancelled)
}

// ExportEnrollments renders the enrollment list in the requested
// format: "csv" or "xlsx".
func (s *WorkshopService) ExportEnrollments(ctx context.Context, id int, format string) ([]byte, string, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	switch format {
	case "csv", "":
		return export.EnrollmentsCSV(w), "text/csv", nil
	case "xlsx":
		data, err := export.EnrollmentsXLSX(w)
		if err != nil {
			return nil, "", fmt.Errorf("rendering xlsx: %w", err)
		}
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return nil, "", &domain.ErrValidation{Field: "format", Message: "must be csv or xlsx"}
	}
}

func (s *WorkshopService) transition(ctx context.Context, id int, to domain.WorkshopStatus) (domain.Workshop, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.Workshop{}, err
	}
	from := w.Status
	if !from.CanTransition(to) {
		return domain.Workshop{}, &domain.ErrInvalidTransition{
			Entity: "workshop", ID: strconv.Itoa(id),
			From: string(from), To: string(to),
		}
	}

	w.Status = to
	updated, err := s.store.Update(ctx, w)
	if err != nil {
		return domain.Workshop{}, fmt.Errorf("applying workshop transition: %w", err)
	}

	s.metrics.RecordTransition("workshop", string(from), string(to))
	s.notifier.Publish(domain.TransitionEvent{
		EventID: uuid.NewString(),
		Entity:  "workshop",
		ID:      updated.ID,
		From:    string(from),
		To:      string(to),
		At:      time.Now(),
	})
	s.flush()
	s.logger.Info("workshop transition",
		zap.Int("workshop_id", updated.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return updated, nil
}

func validateWorkshop(w domain.Workshop) error {
	if strings.TrimSpace(w.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(w.Instructor) == "" {
		return &domain.ErrValidation{Field: "instructor", Message: "required"}
	}
	if w.Capacity <= 0 {
		return &domain.ErrValidation{Field: "capacity", Message: "must be positive"}
	}
	if w.Price < 0 {
		return &domain.ErrValidation{Field: "price", Message: "must not be negative"}
	}
	return nil
}
