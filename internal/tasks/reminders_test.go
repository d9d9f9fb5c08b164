package tasks

import (
	"testing"
	"time"

	"colendar/internal/models"

	"github.com/stretchr/testify/assert"
)

func itemAt(date time.Time, tm string) *models.EventItem {
	item := &models.EventItem{Date: date}
	if tm != "" {
		item.Time = &tm
	}
	return item
}

func TestReminderAt(t *testing.T) {
	loc := time.UTC
	date := time.Date(2025, 8, 12, 0, 0, 0, 0, loc)

	at, ok := reminderAt(itemAt(date, "14:30"), loc)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2025, 8, 12, 14, 30, 0, 0, loc), at)

	// Свободный формат времени, не похожий на HH:MM, пропускается.
	_, ok = reminderAt(itemAt(date, "утром"), loc)
	assert.False(t, ok)
	_, ok = reminderAt(itemAt(date, "14:30-16:00"), loc)
	assert.False(t, ok)

	// Запись без времени напоминаний не получает.
	_, ok = reminderAt(itemAt(date, ""), loc)
	assert.False(t, ok)
}

func TestInReminderWindow(t *testing.T) {
	now := time.Date(2025, 8, 12, 13, 45, 0, 0, time.UTC)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"через 15 минут", now.Add(15 * time.Minute), true},
		{"через полчаса ровно", now.Add(30 * time.Minute), true},
		{"через 31 минуту", now.Add(31 * time.Minute), false},
		{"прямо сейчас", now, false},
		{"уже прошла", now.Add(-5 * time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inReminderWindow(tc.at, now))
		})
	}
}
