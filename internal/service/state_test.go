package service

import (
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeState(t *testing.T) {
	t.Run("blank means ALL", func(t *testing.T) {
		state, err := NormalizeState("")
		assert.NoError(t, err)
		assert.Equal(t, models.StateAll, state)
	})

	t.Run("known states pass through", func(t *testing.T) {
		for _, state := range []string{
			models.StateAll, models.StateCurrent, models.StatePast,
			models.StateFuture, models.StateWaiting, models.StateRejected,
		} {
			got, err := NormalizeState(state)
			assert.NoError(t, err)
			assert.Equal(t, state, got)
		}
	})

	t.Run("unknown state rejected with fixed message", func(t *testing.T) {
		_, err := NormalizeState("SOMEDAY")
		assert.Error(t, err)
		assert.EqualError(t, err, "Unknown state: UNSUPPORTED_STATUS")
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := NormalizeState("all")
		assert.Error(t, err)
	})
}

func TestNormalizePage(t *testing.T) {
	t.Run("snaps offset to page boundary", func(t *testing.T) {
		page, err := NormalizePage(7, 5)
		assert.NoError(t, err)
		assert.Equal(t, models.Page{Limit: 5, Offset: 5}, page)
	})

	t.Run("first page", func(t *testing.T) {
		page, err := NormalizePage(0, 10)
		assert.NoError(t, err)
		assert.Equal(t, models.Page{Limit: 10, Offset: 0}, page)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NormalizePage(-1, 10)
		assert.ErrorIs(t, err, ErrInvalidPagination)

		_, err = NormalizePage(0, 0)
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})
}
