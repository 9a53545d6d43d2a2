package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-cardgen/internal/domain"
	"github.com/phrazzld/scry-cardgen/internal/store"
	"github.com/phrazzld/scry-cardgen/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to the test database and migrates it, or skips.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := testdb.Open(t)
	require.NoError(t, Migrate(context.Background(), db, MigrateUp, nil))
	return db
}

func TestIntegrationCreateMultiple(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		sets := NewPostgresFlashcardSetStore(db, nil).WithTx(tx)
		cards := NewPostgresFlashcardStore(db, nil).WithTx(tx)

		owner := uuid.New()
		set, err := domain.NewFlashcardSet(owner, "Integration")
		require.NoError(t, err)
		require.NoError(t, sets.CreateSet(ctx, set))

		gotOwner, err := sets.GetSetOwner(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, owner, gotOwner)

		input := makeCards(t, set.ID, 3)
		saved, err := cards.CreateMultiple(ctx, input)
		require.NoError(t, err)
		require.Len(t, saved, 3)
		for i, card := range saved {
			assert.Equal(t, input[i].ID, card.ID)
			assert.Equal(t, set.ID, card.SetID)
			assert.False(t, card.CreatedAt.IsZero())
		}
	})
}

func TestIntegrationCreateMultipleUnknownSetIsAllOrNothing(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		cards := NewPostgresFlashcardStore(db, nil).WithTx(tx)
		missing := uuid.New()

		_, err := cards.CreateMultiple(ctx, makeCards(t, missing, 2))

		var storeErr *store.StoreError
		require.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "23503", storeErr.Details["code"])
	})

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM flashcard WHERE set_id NOT IN (SELECT id FROM flashcard_set)").Scan(&count))
	assert.Zero(t, count)
}

func TestIntegrationRunInTransactionCreatesSetWithCards(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	setStore := NewPostgresFlashcardSetStore(db, nil)
	cardStore := NewPostgresFlashcardStore(db, nil)

	set, err := domain.NewFlashcardSet(uuid.New(), "Rolled back")
	require.NoError(t, err)
	rollback := errors.New("rollback")

	err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		if err := setStore.WithTx(tx).CreateSet(ctx, set); err != nil {
			return err
		}
		if _, err := cardStore.WithTx(tx).CreateMultiple(ctx, makeCards(t, set.ID, 2)); err != nil {
			return err
		}
		return rollback
	})
	require.ErrorIs(t, err, rollback)

	_, err = setStore.GetSetOwner(ctx, set.ID)
	assert.ErrorIs(t, err, store.ErrSetNotFound)
}

func TestIntegrationMigrateVersionAndStatus(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, Migrate(context.Background(), db, MigrateVersion, nil))
	assert.NoError(t, Migrate(context.Background(), db, MigrateStatus, nil))
	assert.Error(t, Migrate(context.Background(), db, "sideways", nil))
}
