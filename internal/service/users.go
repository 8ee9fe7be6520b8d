package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/port"
)

// UserService manages platform accounts from the admin panel.
type UserService struct {
	store  port.UserStore
	logger *zap.Logger
}

func NewUserService(store port.UserStore, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int) (domain.User, error) {
	return s.store.Get(ctx, id)
}

// Create adds an account with an admin-chosen role and password.
func (s *UserService) Create(ctx context.Context, user domain.User, password string) (domain.User, error) {
	if err := validateUser(user); err != nil {
		return domain.User{}, err
	}
	if len(password) < 8 {
		return domain.User{}, &domain.ErrValidation{Field: "password", Message: "must be at least 8 characters"}
	}
	if _, err := s.store.GetByEmail(ctx, user.Email); err == nil {
		return domain.User{}, &domain.ErrConflict{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.RegisteredDate = time.Now()
	user.Active = true

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("creating user: %w", err)
	}
	s.logger.Info("user created", zap.Int("user_id", created.ID), zap.String("role", string(created.Role)))
	return created, nil
}

// Update replaces the editable profile fields. The password hash,
// lockout state and registration date are preserved from the stored
// record.
func (s *UserService) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if err := validateUser(user); err != nil {
		return domain.User{}, err
	}
	current, err := s.store.Get(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = current.PasswordHash
	user.FailedAttempts = current.FailedAttempts
	user.LockedUntil = current.LockedUntil
	user.RegisteredDate = current.RegisteredDate
	user.OrdersCount = current.OrdersCount

	updated, err := s.store.Update(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("updating user: %w", err)
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Int("user_id", id))
	return nil
}

func validateUser(u domain.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if !strings.Contains(u.Email, "@") {
		return &domain.ErrValidation{Field: "email", Message: "invalid email"}
	}
	if !u.Role.Valid() {
		return &domain.ErrValidation{Field: "role", Message: "unknown role"}
	}
	return nil
}

// EmployeeService manages staff records.
type EmployeeService struct {
	store  port.EmployeeStore
	logger *zap.Logger
}

func NewEmployeeService(store port.EmployeeStore, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{store: store, logger: logger}
}

func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	return s.store.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int) (domain.Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	if err := validateEmployee(e); err != nil {
		return domain.Employee{}, err
	}
	if e.HiredDate.IsZero() {
		e.HiredDate = time.Now()
	}
	e.Active = true
	created, err := s.store.Create(ctx, e)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("creating employee: %w", err)
	}
	s.logger.Info("employee created", zap.Int("employee_id", created.ID))
	return created, nil
}

func (s *EmployeeService) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	if err := validateEmployee(e); err != nil {
		return domain.Employee{}, err
	}
	updated, err := s.store.Update(ctx, e)
	if err != nil {
		return domain.Employee{}, err
	}
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

func validateEmployee(e domain.Employee) error {
	if strings.TrimSpace(e.Name) == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if strings.TrimSpace(e.Position) == "" {
		return &domain.ErrValidation{Field: "position", Message: "required"}
	}
	if e.Salary < 0 {
		return &domain.ErrValidation{Field: "salary", Message: "must not be negative"}
	}
	return nil
}
