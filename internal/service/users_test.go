package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/domain"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

func TestUserCreateHashesPasswordAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := service.NewUserService(stores.Users, zap.NewNop())

	created, err := svc.Create(ctx, domain.User{
		Name: "Ana García", Email: "ana@example.com", Role: domain.RoleClient,
	}, "contraseña-segura")
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "contraseña-segura", created.PasswordHash)

	_, err = svc.Create(ctx, domain.User{
		Name: "Ana Dos", Email: "Ana@Example.com", Role: domain.RoleClient,
	}, "otra-clave-larga")
	var conflict *domain.ErrConflict
	assert.ErrorAs(t, err, &conflict)

	_, err = svc.Create(ctx, domain.User{
		Name: "Clave Corta", Email: "corta@example.com", Role: domain.RoleClient,
	}, "corta")
	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestUserUpdatePreservesCredentialState(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := service.NewUserService(stores.Users, zap.NewNop())

	created, err := svc.Create(ctx, domain.User{
		Name: "Ana García", Email: "ana@example.com", Role: domain.RoleClient,
	}, "contraseña-segura")
	require.NoError(t, err)

	edit := created
	edit.Name = "Ana G. de Pardo"
	edit.Document = domain.UserDocument{Type: "CC", Number: "1020456789"}
	edit.PasswordHash = "forged"
	edit.OrdersCount = 99

	updated, err := svc.Update(ctx, edit)
	require.NoError(t, err)
	assert.Equal(t, "Ana G. de Pardo", updated.Name)
	assert.Equal(t, "CC 1020456789", updated.Document.String())
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.Zero(t, updated.OrdersCount)
	assert.Equal(t, created.RegisteredDate.Unix(), updated.RegisteredDate.Unix())
}

func TestUserValidation(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	svc := service.NewUserService(stores.Users, zap.NewNop())

	cases := []struct {
		name  string
		user  domain.User
		field string
	}{
		{"missing name", domain.User{Email: "a@b.co", Role: domain.RoleClient}, "name"},
		{"bad email", domain.User{Name: "A", Email: "no-arroba", Role: domain.RoleClient}, "email"},
		{"unknown role", domain.User{Name: "A", Email: "a@b.co", Role: "superuser"}, "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.user, "contraseña-segura")
			var verr *domain.ErrValidation
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestBlogPublishLifecycle(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores()
	flushed := 0
	svc := service.NewBlogService(stores.Blog, func() { flushed++ }, zap.NewNop())

	post, err := svc.Create(ctx, domain.BlogPost{
		Title:   "Nudos básicos para empezar",
		Author:  "Isabella",
		Content: "El nudo alondra es el punto de partida...",
		Tags:    []string{"tutorial"},
	})
	require.NoError(t, err)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)

	published, err := svc.Publish(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)
	require.NotNil(t, published.PublishedAt)
	assert.WithinDuration(t, time.Now(), *published.PublishedAt, time.Second)

	// Editing a published post keeps it published.
	published.Content = "El nudo alondra es el punto de partida, y el festón el segundo."
	updated, err := svc.Update(ctx, published)
	require.NoError(t, err)
	assert.True(t, updated.Published)

	hidden, err := svc.Unpublish(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, hidden.Published)
	assert.Nil(t, hidden.PublishedAt)

	assert.Equal(t, 3, flushed)
}
