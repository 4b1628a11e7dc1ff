package devchart

import (
	"errors"
	"testing"

	"darkroom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("BoxSpeed", func(t *testing.T) {
		entry, err := Lookup("HP5+ 400", "Ilfotec LC-29", 400)
		require.NoError(t, err)
		assert.Equal(t, 6.5, entry.Time)
		assert.Equal(t, "1+19", entry.Dilution)
	})

	t.Run("PushedTwoStops", func(t *testing.T) {
		entry, err := Lookup("Tri-X 400", "HC-110", 1600)
		require.NoError(t, err)
		assert.Equal(t, 11.5, entry.Time)
	})

	t.Run("UnknownFilm", func(t *testing.T) {
		_, err := Lookup("Portra 400", "HC-110", 400)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("UnknownDeveloper", func(t *testing.T) {
		_, err := Lookup("Tri-X 400", "Pyrocat-HD", 400)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})

	t.Run("UnchartedISO", func(t *testing.T) {
		_, err := Lookup("Tri-X 400", "HC-110", 12800)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestChartConsistency(t *testing.T) {
	for key, entry := range chart {
		assert.True(t, films[key.film], "unlisted film %q", key.film)
		assert.True(t, developers[key.developer], "unlisted developer %q", key.developer)
		assert.Greater(t, entry.Time, 0.0, "%v", key)
		assert.NotEmpty(t, entry.Dilution, "%v", key)
	}
}
