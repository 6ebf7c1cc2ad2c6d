package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"contactly-be/internal/cache"
	"contactly-be/internal/entities"
	"contactly-be/internal/logger"
	"contactly-be/internal/models"
	"contactly-be/internal/repository"
	"contactly-be/internal/repository/mocks"
	"contactly-be/internal/validation"
)

const testContactID = "0b7e4a52-1f3c-4d6e-9a8b-7c6d5e4f3a2b"

func newTestContactService(t *testing.T, withCache bool) (ContactService, *mocks.MockContactRepository, *miniredis.Miniredis) {
	t.Helper()
	repo := mocks.NewMockContactRepository(gomock.NewController(t))

	var (
		mr *miniredis.Miniredis
		cc cache.ContactCache
	)
	if withCache {
		mr = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		cc = cache.NewContactCache(client, time.Minute)
	}

	return NewContactService(repo, cc, validation.New(), logger.Noop()), repo, mr
}

func validCreateRequest() *models.CreateContactRequest {
	birthday := models.NewBirthday(1990, time.May, 17)
	return &models.CreateContactRequest{
		Name:     "Jane Doe",
		Phone:    "+1-555-1234",
		Email:    "jane@example.com",
		Address:  &models.AddressInput{City: "Springfield"},
		Birthday: &birthday,
		Tags:     []string{"friends"},
	}
}

func TestContactService_Create(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *entities.Contact) (*entities.Contact, error) {
			assert.Equal(t, testUserID, c.PostedBy)
			assert.Equal(t, "Springfield", c.Address.City)
			assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), *c.Birthday)
			created := *c
			created.ID = testContactID
			return &created, nil
		})

	created, err := svc.Create(ctx, testUserID, validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, testContactID, created.ID)
}

func TestContactService_CreateRejectsBadPhone(t *testing.T) {
	svc, _, _ := newTestContactService(t, false)

	req := validCreateRequest()
	req.Phone = "abc"
	_, err := svc.Create(context.Background(), testUserID, req)

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "phone", vErr.Field)
}

func TestContactService_CreateValidatesTrimmedName(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	req := validCreateRequest()
	req.Name = "   ab   "
	_, err := svc.Create(ctx, testUserID, req)

	var vErr *validation.Error
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *entities.Contact) (*entities.Contact, error) {
			return c, nil
		})

	req = validCreateRequest()
	req.Name = "  Jane Doe  "
	created, err := svc.Create(ctx, testUserID, req)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", created.Name)
}

func TestContactService_Get(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	_, err := svc.Get(ctx, testUserID, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)

	repo.EXPECT().FindByIDAndOwner(ctx, testContactID, testUserID).Return(nil, repository.ErrNotFound)
	_, err = svc.Get(ctx, testUserID, testContactID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_Update(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	existing := &entities.Contact{
		ID:       testContactID,
		Name:     "Jane Doe",
		Phone:    "+1-555-1234",
		Email:    "jane@example.com",
		Notes:    "keep me",
		Tags:     []string{"friends"},
		PostedBy: testUserID,
	}
	newName := "Jane Roe"
	fav := true

	repo.EXPECT().FindByIDAndOwner(ctx, testContactID, testUserID).Return(existing, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, c *entities.Contact) (*entities.Contact, error) {
			return c, nil
		})

	updated, err := svc.Update(ctx, testUserID, &models.UpdateContactRequest{
		ID:       testContactID,
		Name:     &newName,
		Address:  &models.AddressInput{Street: "12 Main St"},
		Favorite: &fav,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", updated.Name)
	assert.Equal(t, "keep me", updated.Notes)
	assert.Equal(t, []string{"friends"}, updated.Tags)
	assert.Equal(t, "12 Main St", updated.Address.Street)
	assert.True(t, updated.Favorite)
}

func TestContactService_UpdateErrors(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	_, err := svc.Update(ctx, testUserID, &models.UpdateContactRequest{})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = svc.Update(ctx, testUserID, &models.UpdateContactRequest{ID: "42"})
	assert.ErrorIs(t, err, ErrInvalidID)

	bad := "abc"
	_, err = svc.Update(ctx, testUserID, &models.UpdateContactRequest{ID: testContactID, Phone: &bad})
	var vErr *validation.Error
	assert.ErrorAs(t, err, &vErr)

	repo.EXPECT().FindByIDAndOwner(ctx, testContactID, testUserID).Return(nil, repository.ErrNotFound)
	_, err = svc.Update(ctx, testUserID, &models.UpdateContactRequest{ID: testContactID})
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestContactService_UpdateValidatesTrimmedName(t *testing.T) {
	svc, _, _ := newTestContactService(t, false)

	for _, name := range []string{"    x    ", "      "} {
		_, err := svc.Update(context.Background(), testUserID, &models.UpdateContactRequest{ID: testContactID, Name: &name})

		var vErr *validation.Error
		require.ErrorAs(t, err, &vErr, "name %q", name)
		assert.Equal(t, "name", vErr.Field)
	}
}

func TestContactService_Delete(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	repo.EXPECT().Delete(ctx, testContactID, testUserID).Return(nil)
	repo.EXPECT().Delete(ctx, "other", testUserID).Return(repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, testUserID, testContactID))
	assert.ErrorIs(t, svc.Delete(ctx, testUserID, "other"), ErrContactNotFound)
}

func TestContactService_ListUsesCache(t *testing.T) {
	svc, repo, mr := newTestContactService(t, true)
	ctx := context.Background()

	contacts := []*entities.Contact{{ID: testContactID, Name: "Jane Doe", Tags: []string{}, PostedBy: testUserID}}
	repo.EXPECT().ListByOwner(ctx, testUserID).Return(contacts, nil).Times(1)

	first, err := svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	require.Len(t, first.Contacts, 1)
	assert.True(t, mr.Exists("contacts:"+testUserID+":0"))

	second, err := svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", second.Contacts[0].Name)
}

func TestContactService_WritesInvalidateCache(t *testing.T) {
	svc, repo, mr := newTestContactService(t, true)
	ctx := context.Background()

	repo.EXPECT().ListByOwner(ctx, testUserID).Return([]*entities.Contact{}, nil).Times(2)
	repo.EXPECT().Delete(ctx, testContactID, testUserID).Return(nil)

	_, err := svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	require.True(t, mr.Exists("contacts:"+testUserID+":0"))

	require.NoError(t, svc.Delete(ctx, testUserID, testContactID))
	version, err := mr.Get("contacts:" + testUserID + ":version")
	require.NoError(t, err)
	assert.Equal(t, "1", version)

	_, err = svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	assert.True(t, mr.Exists("contacts:"+testUserID+":1"))
}

func TestContactService_ListDoesNotCacheListOverlappingWrite(t *testing.T) {
	svc, repo, mr := newTestContactService(t, true)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	other := cache.NewContactCache(client, time.Minute)

	fresh := []*entities.Contact{{ID: testContactID, Name: "Jane Doe", Tags: []string{}, PostedBy: testUserID}}
	gomock.InOrder(
		// a concurrent create commits and invalidates while this read is in flight
		repo.EXPECT().ListByOwner(ctx, testUserID).
			DoAndReturn(func(ctx context.Context, ownerID string) ([]*entities.Contact, error) {
				require.NoError(t, other.Invalidate(ctx, ownerID))
				return []*entities.Contact{}, nil
			}),
		repo.EXPECT().ListByOwner(ctx, testUserID).Return(fresh, nil),
	)

	stale, err := svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, stale.Contacts)

	resp, err := svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	require.Len(t, resp.Contacts, 1)
	assert.Equal(t, testContactID, resp.Contacts[0].ID)

	resp, err = svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, resp.Contacts, 1)
}

func TestContactService_ListSurvivesCacheOutage(t *testing.T) {
	svc, repo, mr := newTestContactService(t, true)
	ctx := context.Background()
	mr.Close()

	repo.EXPECT().ListByOwner(ctx, testUserID).Return([]*entities.Contact{{ID: testContactID}}, nil)

	resp, err := svc.List(ctx, testUserID, ListOptions{})
	require.NoError(t, err)
	assert.Len(t, resp.Contacts, 1)
}

func TestContactService_ToggleFavorite(t *testing.T) {
	svc, repo, _ := newTestContactService(t, false)
	ctx := context.Background()

	toggled := &entities.Contact{ID: testContactID, Favorite: true}
	repo.EXPECT().ToggleFavorite(ctx, testContactID, testUserID).Return(toggled, nil)
	repo.EXPECT().ListByOwner(ctx, testUserID).Return([]*entities.Contact{toggled}, nil)

	contacts, err := svc.ToggleFavorite(ctx, testUserID, testContactID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.True(t, contacts[0].Favorite)

	repo.EXPECT().ToggleFavorite(ctx, testContactID, testUserID).Return(nil, repository.ErrNotFound)
	_, err = svc.ToggleFavorite(ctx, testUserID, testContactID)
	assert.ErrorIs(t, err, ErrContactNotFound)
}
