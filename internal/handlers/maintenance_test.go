package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTitleDateSuffix(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"тире и ISO-дата", "Standup - 2025-08-12", "Standup"},
		{"длинное тире и ISO-дата", "Отчёт — 2025-12-01", "Отчёт"},
		{"голая ISO-дата", "Ревью 2025-08-12", "Ревью"},
		{"порядковая дата", "Call 12th Aug, 2025", "Call"},
		{"порядковая дата без суффикса", "Review - 1 January 2026", "Review"},
		{"порядковая дата после кириллицы", "Планёрка 3rd Sep, 2025", "Планёрка"},
		{"без даты", "No date here", "No date here"},
		{"дата в середине не трогается", "2025-08-12 ретро", "2025-08-12 ретро"},
		{"название из одной даты", "2025-01-31", ""},
		{"пустое название", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripTitleDateSuffix(tc.title))
		})
	}
}
