package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dom/product-catalog-api/internal/domain"
	"github.com/dom/product-catalog-api/internal/repository/postgres"
	"github.com/dom/product-catalog-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSession(userID uuid.UUID, agent string) *domain.Session {
	return &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		State:     domain.SessionActive,
		UserAgent: agent,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestSessionRepository_Lifecycle(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	session := newSession(user.ID, "lifecycle-agent")

	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, got.State)
	assert.Equal(t, "lifecycle-agent", got.UserAgent)

	// Invalidate flips state and is idempotent.
	require.NoError(t, repo.Invalidate(ctx, session.ID))
	require.NoError(t, repo.Invalidate(ctx, session.ID))

	got, err = repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInvalidated, got.State)
	assert.False(t, got.Valid())

	// The record is never deleted.
	var count int64
	require.NoError(t, testDB.DB.Model(&domain.Session{}).Where("id = ?", session.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSessionRepository_Invalidate_Absent(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)

	// Invalidating a session that does not exist is a no-op.
	assert.NoError(t, repo.Invalidate(context.Background(), uuid.New()))
}

func TestSessionRepository_FirstValidByUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := repo.FirstValidByUser(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	older := newSession(user.ID, "older-agent")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	newer := newSession(user.ID, "newer-agent")
	require.NoError(t, repo.Create(ctx, newer))

	got, err := repo.FirstValidByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID, "newest active session wins")

	require.NoError(t, repo.Invalidate(ctx, newer.ID))

	got, err = repo.FirstValidByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)
}

func TestSessionRepository_InvalidateAllByUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSessionRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	require.NoError(t, repo.Create(ctx, newSession(user.ID, "a")))
	require.NoError(t, repo.Create(ctx, newSession(user.ID, "b")))
	otherSession := newSession(other.ID, "c")
	require.NoError(t, repo.Create(ctx, otherSession))

	require.NoError(t, repo.InvalidateAllByUser(ctx, user.ID))

	_, err := repo.FirstValidByUser(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Other users' sessions are untouched.
	got, err := repo.FirstValidByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, otherSession.ID, got.ID)
}
