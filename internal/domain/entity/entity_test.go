package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

func TestTimeSlots_De0800A2030CadaMediaHora(t *testing.T) {
	slots := entity.TimeSlots()
	assert.Len(t, slots, 26)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "08:30", slots[1])
	assert.Equal(t, "20:30", slots[len(slots)-1])

	assert.True(t, entity.IsValidTimeSlot("13:30"))
	assert.False(t, entity.IsValidTimeSlot("07:30"))
	assert.False(t, entity.IsValidTimeSlot("21:00"))
	assert.False(t, entity.IsValidTimeSlot(""))
}

func TestParseLocationKind_AceptaAliasEnEspanol(t *testing.T) {
	cases := map[string]entity.LocationKind{
		"bodega":     entity.LocationWarehouse,
		"Trastienda": entity.LocationBackroom,
		" PISO ":     entity.LocationFloor,
		"floor":      entity.LocationFloor,
	}
	for in, want := range cases {
		got, ok := entity.ParseLocationKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := entity.ParseLocationKind("sotano")
	assert.False(t, ok)
}
