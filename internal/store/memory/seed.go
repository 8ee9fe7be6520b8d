package memory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
)

// Stores bundles every collection the application serves.
type Stores struct {
	Users     *UserStore
	Employees *Store[domain.Employee]
	Products  *Store[domain.Product]
	Materials *Store[domain.RawMaterial]
	Services  *Store[domain.Service]
	Orders    *OrderStore
	Returns   *ReturnStore
	Quotes    *QuoteStore
	Workshops *Store[domain.Workshop]
	Blog      *Store[domain.BlogPost]
	Tokens    *RefreshTokenStore
}

// NewStores builds all empty collections.
func NewStores() *Stores {
	return &Stores{
		Users:     NewUserStore(),
		Employees: NewEmployeeStore(),
		Products:  NewProductStore(),
		Materials: NewMaterialStore(),
		Services:  NewServiceStore(),
		Orders:    NewOrderStore(),
		Returns:   NewReturnStore(),
		Quotes:    NewQuoteStore(),
		Workshops: NewWorkshopStore(),
		Blog:      NewBlogStore(),
		Tokens:    NewRefreshTokenStore(),
	}
}

// Counts reports how many records each store holds, keyed by entity.
func (s *Stores) Counts() map[string]int {
	return map[string]int{
		"users":     s.Users.Len(),
		"employees": s.Employees.Len(),
		"products":  s.Products.Len(),
		"materials": s.Materials.Len(),
		"services":  s.Services.Len(),
		"orders":    s.Orders.Len(),
		"returns":   s.Returns.Len(),
		"quotes":    s.Quotes.Len(),
		"workshops": s.Workshops.Len(),
		"blog":      s.Blog.Len(),
	}
}

// Seed loads a small demo dataset so the admin panels are not empty on
// first run. The admin login is admin@nudostudio.co / admin123.
func (s *Stores) Seed(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		return err
	}
	now := time.Now()

	admin := domain.User{
		Name: "Isabella Ariza", Email: "admin@nudostudio.co",
		Role: domain.RoleAdmin, PasswordHash: string(hash),
		RegisteredDate: now.AddDate(-1, 0, 0), Active: true,
	}
	if _, err := s.Users.Create(ctx, admin); err != nil {
		return err
	}
	ana := domain.User{
		Name: "Ana García", Email: "ana@example.com", Phone: "3001234567",
		Address: "Calle 45 #12-30, Bogotá", Role: domain.RoleClient,
		Document:       domain.UserDocument{Type: "CC", Number: "1020456789"},
		PasswordHash:   string(hash),
		RegisteredDate: now.AddDate(0, -3, 0), Active: true,
	}
	ana, err = s.Users.Create(ctx, ana)
	if err != nil {
		return err
	}

	if _, err := s.Employees.Create(ctx, domain.Employee{
		Name: "Carlos Mendoza", Email: "carlos@nudostudio.co",
		Position: "Artesano", Salary: 1800000,
		HiredDate: now.AddDate(0, -8, 0), Active: true,
	}); err != nil {
		return err
	}

	products := []domain.Product{
		{Name: "Tapiz de macramé grande", Category: "Decoración", Price: 120000, Stock: 5, Visible: true},
		{Name: "Colgante para plantas", Category: "Decoración", Price: 45000, Stock: 12, Visible: true},
		{Name: "Kit DIY pulseras", Category: "Kits", Price: 35000, Stock: 20, Visible: true},
	}
	for _, p := range products {
		if _, err := s.Products.Create(ctx, p); err != nil {
			return err
		}
	}

	if _, err := s.Materials.Create(ctx, domain.RawMaterial{
		Name: "Cuerda de algodón 3mm", Supplier: "Hilos del Valle",
		Unit: "metro", Stock: 40, MinStock: 50, UnitCost: 800,
	}); err != nil {
		return err
	}

	if _, err := s.Services.Create(ctx, domain.Service{
		Name: "Reparación de tejidos", Price: 25000, DurationMin: 60, Active: true,
	}); err != nil {
		return err
	}

	order := domain.Order{
		Number: s.Orders.NextNumber(),
		Customer: domain.CustomerSnapshot{
			UserID: ana.ID, Name: ana.Name, Document: ana.Document.String(),
			Email: ana.Email, Phone: ana.Phone, Address: ana.Address,
		},
		Items: []domain.OrderItem{
			{ProductID: 2, Name: "Colgante para plantas", Quantity: 2, UnitPrice: 45000},
		},
		Status:        domain.OrderPending,
		PaymentMethod: "Transferencia bancaria",
		CreatedAt:     now.AddDate(0, 0, -2),
	}
	order.ComputeTotal()
	if _, err := s.Orders.Create(ctx, order); err != nil {
		return err
	}

	quote := domain.Quote{
		Number:       s.Quotes.NextNumber(),
		CustomerName: "Ana García", CustomerEmail: "ana@example.com",
		Description: "Kit DIY personalizado para evento corporativo",
		Service:     "Personalización",
		Budget:      "300000-500000", Timeline: "3 semanas",
		Quantity: 3, Status: domain.QuotePending,
		RequestedAt: now.AddDate(0, 0, -1),
	}
	if _, err := s.Quotes.Create(ctx, quote); err != nil {
		return err
	}

	if _, err := s.Workshops.Create(ctx, domain.Workshop{
		Name: "Introducción al macramé", Instructor: "Carlos Mendoza",
		Date: now.AddDate(0, 1, 0), DurationMin: 120, Capacity: 8,
		Price: 60000, Location: "Taller Nudo Studio",
		Status: domain.WorkshopScheduled, Visible: true,
		Enrollments: []domain.Enrollment{},
	}); err != nil {
		return err
	}

	if _, err := s.Blog.Create(ctx, domain.BlogPost{
		Title: "Cómo cuidar tus piezas de macramé", Author: "Isabella Ariza",
		Summary:   "Consejos para que tus tejidos duren años.",
		Content:   "El algodón natural necesita pocos cuidados...",
		Tags:      []string{"cuidados", "macramé"},
		Published: true, CreatedAt: now.AddDate(0, 0, -10),
		PublishedAt: &now,
	}); err != nil {
		return err
	}

	return nil
}
