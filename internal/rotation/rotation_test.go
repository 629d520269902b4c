package rotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlourenco/rodizio/internal/models"
	"github.com/vlourenco/rodizio/internal/rotation"
)

func TestNextPersonSequential(t *testing.T) {
	people := []string{"A", "B", "C"}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{name: "index 0", index: 0, want: "A"},
		{name: "index 1", index: 1, want: "B"},
		{name: "index wraps around", index: 4, want: "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &models.Settings{
				RotationMode: models.RotationSequential,
				CurrentIndex: tt.index,
			}
			got, ok := rotation.NextPerson(people, settings)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPersonEmptyRoster(t *testing.T) {
	settings := &models.Settings{RotationMode: models.RotationSequential}

	_, ok := rotation.NextPerson(nil, settings)
	assert.False(t, ok)

	_, ok = rotation.NextPerson([]string{}, settings)
	assert.False(t, ok)
}

func TestNextPersonRandomStaysInRoster(t *testing.T) {
	people := []string{"A", "B"}
	settings := &models.Settings{RotationMode: models.RotationRandom}

	for range 50 {
		got, ok := rotation.NextPerson(people, settings)
		require.True(t, ok)
		assert.Contains(t, people, got)
	}
}

func TestAdvance(t *testing.T) {
	t.Run("sequential increments by one mod length", func(t *testing.T) {
		rec := &models.StateRecord{
			People:   []string{"A", "B", "C"},
			Settings: &models.Settings{RotationMode: models.RotationSequential, CurrentIndex: 0},
		}

		rotation.Advance(rec)
		assert.Equal(t, 1, rec.Settings.CurrentIndex)

		rec.Settings.CurrentIndex = 2
		rotation.Advance(rec)
		assert.Equal(t, 0, rec.Settings.CurrentIndex)
	})

	t.Run("random mode is untouched", func(t *testing.T) {
		rec := &models.StateRecord{
			People:   []string{"A", "B"},
			Settings: &models.Settings{RotationMode: models.RotationRandom, CurrentIndex: 1},
		}
		rotation.Advance(rec)
		assert.Equal(t, 1, rec.Settings.CurrentIndex)
	})

	t.Run("empty roster is a no-op", func(t *testing.T) {
		rec := &models.StateRecord{
			People:   nil,
			Settings: &models.Settings{RotationMode: models.RotationSequential, CurrentIndex: 0},
		}
		rotation.Advance(rec)
		assert.Equal(t, 0, rec.Settings.CurrentIndex)
	})
}
