package connections

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/scholaria/scholaria-backend/src/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Profile{}, &models.Connection{}))

	return NewGormStore(db)
}

func seedProfiles(t *testing.T, s *GormStore, names ...string) []uint {
	t.Helper()

	ids := make([]uint, 0, len(names))
	for _, name := range names {
		p := models.Profile{FullName: name, Email: name + "@example.edu"}
		require.NoError(t, s.db.Create(&p).Error)
		ids = append(ids, p.ID)
	}
	return ids
}

func TestGormStoreInsertAndFetch(t *testing.T) {
	store := newTestStore(t)
	ids := seedProfiles(t, store, "Alice Ahn", "Bob Barnes")
	ctx := context.Background()

	req, err := store.InsertRequest(ctx, ids[0], ids[1], "Let's collaborate.")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, req.Status)
	assert.NotZero(t, req.ID)
	assert.False(t, req.CreatedAt.IsZero())

	forSender, err := store.FetchRequests(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, forSender, 1)
	assert.Equal(t, "Let's collaborate.", forSender[0].Message)

	forReceiver, err := store.FetchRequests(ctx, ids[1])
	require.NoError(t, err)
	assert.Len(t, forReceiver, 1)
}

func TestGormStoreUniquePairBothDirections(t *testing.T) {
	store := newTestStore(t)
	ids := seedProfiles(t, store, "Alice Ahn", "Bob Barnes")
	ctx := context.Background()

	_, err := store.InsertRequest(ctx, ids[0], ids[1], "")
	require.NoError(t, err)

	_, err = store.InsertRequest(ctx, ids[0], ids[1], "")
	assert.ErrorIs(t, err, ErrDuplicateRequest)

	_, err = store.InsertRequest(ctx, ids[1], ids[0], "")
	assert.ErrorIs(t, err, ErrDuplicateRequest)
}

func TestGormStoreConditionalUpdate(t *testing.T) {
	store := newTestStore(t)
	ids := seedProfiles(t, store, "Alice Ahn", "Bob Barnes")
	ctx := context.Background()

	req, err := store.InsertRequest(ctx, ids[0], ids[1], "")
	require.NoError(t, err)

	require.NoError(t, store.UpdateRequestStatus(ctx, req.ID, StatusAccepted))

	// The second transition loses to the first: the WHERE status='pending'
	// guard leaves the row untouched.
	err = store.UpdateRequestStatus(ctx, req.ID, StatusRejected)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	stored, err := store.FetchRequestByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, stored.Status)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt) || stored.UpdatedAt.Equal(stored.CreatedAt))
}

func TestGormStoreUpdateUnknownID(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateRequestStatus(context.Background(), 4242, StatusAccepted)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGormStoreFetchRequestByIDUnknown(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FetchRequestByID(context.Background(), 4242)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestGormStoreFetchAccountsExcludesAndOrders(t *testing.T) {
	store := newTestStore(t)
	ids := seedProfiles(t, store, "Carol Chen", "Alice Ahn", "Bob Barnes")

	accounts, err := store.FetchAccounts(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Alice Ahn", accounts[0].FullName)
	assert.Equal(t, "Bob Barnes", accounts[1].FullName)
}
