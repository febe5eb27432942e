package project

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/teamsync/internal/models"
	"github.com/magabrotheeeer/teamsync/internal/services"
	"github.com/magabrotheeeer/teamsync/internal/storage/memory"
)

var bob = Owner{ID: 1, Username: "bob"}

func strPtr(s string) *string { return &s }

func newService() *Service {
	s := New(memory.New())
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func TestService_CreateDefaults(t *testing.T) {
	s := newService()
	p, err := s.Create(context.Background(), bob, models.ProjectCreateRequest{Name: "Alpha"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, models.StatusPlanning, p.Status)
	assert.Equal(t, models.PriorityMedium, p.Priority)
	assert.Equal(t, models.DefaultColor, p.Color)
	assert.Equal(t, "bob", p.OwnerName)
	assert.Equal(t, 1, p.MemberCount)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestService_List(t *testing.T) {
	s := newService()
	ctx := context.Background()
	for _, name := range []string{"A", "B", "C"} {
		_, err := s.Create(ctx, bob, models.ProjectCreateRequest{Name: name})
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, Owner{ID: 2, Username: "alice"}, models.ProjectCreateRequest{Name: "foreign"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		page      int
		size      int
		wantNames []string
		wantPages int
		wantFirst bool
		wantLast  bool
	}{
		{name: "все проекты", page: 0, size: 20, wantNames: []string{"C", "B", "A"}, wantPages: 1, wantFirst: true, wantLast: true},
		{name: "первая из двух", page: 0, size: 2, wantNames: []string{"C", "B"}, wantPages: 2, wantFirst: true},
		{name: "вторая из двух", page: 1, size: 2, wantNames: []string{"A"}, wantPages: 2, wantLast: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.List(ctx, bob.ID, tt.page, tt.size)
			require.NoError(t, err)
			names := make([]string, 0, len(page.Content))
			for _, p := range page.Content {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, 3, page.TotalElements)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.page, page.Number)
			assert.Equal(t, tt.wantFirst, page.First)
			assert.Equal(t, tt.wantLast, page.Last)
		})
	}
}

func TestService_ListEmpty(t *testing.T) {
	page, err := newService().List(context.Background(), bob.ID, 0, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 0, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestService_UpdateMerges(t *testing.T) {
	s := newService()
	ctx := context.Background()
	high := models.PriorityHigh
	created, err := s.Create(ctx, bob, models.ProjectCreateRequest{
		Name: "Alpha", Description: strPtr("old"), Priority: &high, Color: strPtr("#000000"), StartDate: strPtr("2025-01-01"),
	})
	require.NoError(t, err)

	active := models.StatusActive
	updated, err := s.Update(ctx, bob.ID, created.ID, models.ProjectUpdateRequest{Name: "Alpha v2", Status: &active})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.OwnerID, updated.OwnerID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, "Alpha v2", updated.Name)
	assert.Equal(t, models.StatusActive, updated.Status)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	assert.Equal(t, "#000000", updated.Color)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.StartDate)

	got, err := s.Get(ctx, bob.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestService_ForeignProjectIsNotFound(t *testing.T) {
	s := newService()
	ctx := context.Background()
	created, err := s.Create(ctx, bob, models.ProjectCreateRequest{Name: "Alpha"})
	require.NoError(t, err)

	const alice = int64(2)
	_, err = s.Get(ctx, alice, created.ID)
	assert.ErrorIs(t, err, services.ErrProjectNotFound)
	_, err = s.Update(ctx, alice, created.ID, models.ProjectUpdateRequest{Name: "x"})
	assert.ErrorIs(t, err, services.ErrProjectNotFound)
	assert.ErrorIs(t, s.Delete(ctx, alice, created.ID), services.ErrProjectNotFound)

	_, err = s.Get(ctx, bob.ID, created.ID)
	assert.NoError(t, err)
}

func TestService_DeleteTwice(t *testing.T) {
	s := newService()
	ctx := context.Background()
	created, err := s.Create(ctx, bob, models.ProjectCreateRequest{Name: "Alpha"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, bob.ID, created.ID))
	err = s.Delete(ctx, bob.ID, created.ID)
	assert.True(t, errors.Is(err, services.ErrProjectNotFound))
}
