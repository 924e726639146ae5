package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicator_Admit(t *testing.T) {
	d := NewDeduplicator()
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, d.Admit(Event{Date: date, WasteType: "gft", Description: "GFT"}))
	assert.False(t, d.Admit(Event{Date: date, WasteType: "gft", Description: "Groente"}), "same date and type")
	assert.True(t, d.Admit(Event{Date: date, WasteType: "papier", Description: "Papier"}), "different type")
	assert.True(t, d.Admit(Event{Date: date.AddDate(1, 0, 0), WasteType: "gft", Description: "GFT"}), "same day next year")
	assert.Equal(t, 3, d.Len())
}

func TestDeduplicator_ScopedToInstance(t *testing.T) {
	ev := Event{Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), WasteType: "gft"}

	assert.True(t, NewDeduplicator().Admit(ev))
	assert.True(t, NewDeduplicator().Admit(ev))
}

func TestIdentity_String(t *testing.T) {
	ev := Event{Date: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), WasteType: "gft"}

	id := ev.Identity()
	assert.Equal(t, Identity{Year: 2025, YearDay: 161, WasteType: "gft"}, id)
	assert.Equal(t, "2025-161-gft", id.String())
}
