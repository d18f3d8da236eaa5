package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocksSorted(t *testing.T) {
	all := Blocks()
	require.NotEmpty(t, all)

	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Code, all[i].Code)
	}
}

func TestBlockByCode(t *testing.T) {
	b, ok := BlockByCode("b")
	require.True(t, ok)
	assert.Equal(t, "B", b.Code)
	assert.NotEmpty(t, b.Floors)

	_, ok = BlockByCode("Z")
	assert.False(t, ok)
}

func TestRoomsByBlock(t *testing.T) {
	rooms := RoomsByBlock("B")
	require.NotEmpty(t, rooms)
	for _, r := range rooms {
		assert.Equal(t, byte('B'), r.Code[0])
	}

	assert.Empty(t, RoomsByBlock("Z"))
}

func TestRoomByCode(t *testing.T) {
	t.Run("catalogued room", func(t *testing.T) {
		r := RoomByCode("b201")
		assert.Equal(t, "B201", r.Code)
		assert.Equal(t, "CS Seminar Hall", r.Name)
		assert.NotEmpty(t, r.Components)
	})

	t.Run("unknown code falls back to the classroom manifest", func(t *testing.T) {
		r := RoomByCode("A317")
		assert.Equal(t, "A317", r.Code)
		assert.Equal(t, "classroom", r.Type)

		var names []string
		for _, c := range r.Components {
			names = append(names, c.Name)
		}
		assert.Contains(t, names, "Whiteboard")
		assert.Contains(t, names, "Projector")
	})
}

func TestComponentsByCategory(t *testing.T) {
	grouped := ComponentsByCategory("B101")
	require.NotEmpty(t, grouped)

	assert.NotEmpty(t, grouped["electronics"])
	assert.NotEmpty(t, grouped["furniture"])

	total := 0
	for _, components := range grouped {
		total += len(components)
	}
	assert.Equal(t, len(RoomByCode("B101").Components), total)
}
