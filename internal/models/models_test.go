package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventToDict(t *testing.T) {
	created := time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC)
	event := Event{
		ID:        7,
		UserID:    1,
		Title:     "Работа",
		Color:     "#ff6b6b",
		CreatedAt: created,
		UpdatedAt: created,
		Items: []EventItem{
			{ID: 3, EventID: 7, Date: time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC), Title: "Standup"},
		},
	}

	data := event.ToDict(false)
	assert.Equal(t, uint(7), data["id"])
	assert.Equal(t, "Работа", data["title"])
	assert.Equal(t, "#ff6b6b", data["color"])
	assert.Equal(t, "2025-08-01T10:30:00Z", data["created_at"])
	_, hasItems := data["items"]
	assert.False(t, hasItems, "без includeItems ключа items быть не должно")

	data = event.ToDict(true)
	items, ok := data["items"].([]map[string]interface{})
	assert.True(t, ok)
	assert.Len(t, items, 1)
	assert.Equal(t, "Standup", items[0]["title"])
}

func TestEventItemToDict(t *testing.T) {
	tm := "14:30"
	item := EventItem{
		ID:        3,
		EventID:   7,
		Date:      time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC),
		Title:     "Standup",
		Time:      &tm,
		CreatedAt: time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC),
	}

	data := item.ToDict()
	assert.Equal(t, "2025-08-12", data["date"])
	assert.Equal(t, &tm, data["time"])
	assert.Nil(t, data["description"])
	assert.Nil(t, data["notes"])
}

func TestEventToDictEmptyItems(t *testing.T) {
	event := Event{ID: 1, Title: "Пустое", Color: "#999999"}
	data := event.ToDict(true)
	items, ok := data["items"].([]map[string]interface{})
	assert.True(t, ok)
	assert.Empty(t, items, "у нового события список items пустой, а не null")
}
