package database

import (
	"context"
	"testing"
	"time"

	"spendbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func fields(title string, amount float64, category string, date time.Time) models.ExpenseFields {
	return models.ExpenseFields{Title: title, Amount: amount, Category: category, Date: date}
}

// testStore runs the behaviour every Store implementation shares.
// newStore returns an empty store.
func testStore(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("CreateAndGet", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		created, err := store.Create(ctx, fields("Coffee", 4.5, "Food", day(2024, 1, 15)))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, uint(1), created.Version)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Coffee", got.Title)
		assert.Equal(t, 4.5, got.Amount)
		assert.Equal(t, "Food", got.Category)
		assert.True(t, day(2024, 1, 15).Equal(got.Date))
		assert.Equal(t, time.UTC, got.Date.Location())
	})

	t.Run("ListOrdersByDateDesc", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		for _, d := range []time.Time{day(2024, 1, 1), day(2024, 3, 1), day(2024, 2, 1)} {
			_, err := store.Create(ctx, fields("x", 1, "Other", d))
			require.NoError(t, err)
		}

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.True(t, day(2024, 3, 1).Equal(list[0].Date))
		assert.True(t, day(2024, 2, 1).Equal(list[1].Date))
		assert.True(t, day(2024, 1, 1).Equal(list[2].Date))
	})

	t.Run("ListSameDateNewestFirst", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		first, err := store.Create(ctx, fields("first", 1, "Other", day(2024, 1, 1)))
		require.NoError(t, err)
		// createdAt breaks the tie, keep the stamps apart
		time.Sleep(5 * time.Millisecond)
		second, err := store.Create(ctx, fields("second", 1, "Other", day(2024, 1, 1)))
		require.NoError(t, err)

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
	})

	t.Run("ListEmpty", func(t *testing.T) {
		list, err := newStore(t).List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := newStore(t).Get(context.Background(), "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		created, err := store.Create(ctx, fields("Coffee", 4.5, "Food", day(2024, 1, 15)))
		require.NoError(t, err)

		f := created.Fields()
		f.Amount = 6
		updated, err := store.Update(ctx, created, f)
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, 6.0, updated.Amount)
		assert.Equal(t, "Coffee", updated.Title)
		assert.Equal(t, "Food", updated.Category)
		assert.True(t, created.Date.Equal(updated.Date))
		assert.Equal(t, uint(2), updated.Version)
	})

	t.Run("UpdateConflict", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		created, err := store.Create(ctx, fields("Coffee", 4.5, "Food", day(2024, 1, 15)))
		require.NoError(t, err)

		// first writer wins
		_, err = store.Update(ctx, created, fields("Tea", 3, "Food", day(2024, 1, 15)))
		require.NoError(t, err)

		// second writer still holds version 1
		_, err = store.Update(ctx, created, fields("Juice", 5, "Food", day(2024, 1, 15)))
		assert.ErrorIs(t, err, ErrConflict)

		got, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tea", got.Title)
		assert.Equal(t, uint(2), got.Version)
	})

	t.Run("UpdateDeleted", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		created, err := store.Create(ctx, fields("Coffee", 4.5, "Food", day(2024, 1, 15)))
		require.NoError(t, err)
		require.NoError(t, store.Delete(ctx, created.ID))

		_, err = store.Update(ctx, created, created.Fields())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrConflict)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		store := newStore(t)

		assert.ErrorIs(t, store.Delete(ctx, "missing"), ErrNotFound)

		created, err := store.Create(ctx, fields("Coffee", 4.5, "Food", day(2024, 1, 15)))
		require.NoError(t, err)

		require.NoError(t, store.Delete(ctx, created.ID))
		_, err = store.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		// a second delete finds nothing
		assert.ErrorIs(t, store.Delete(ctx, created.ID), ErrNotFound)
	})
}
