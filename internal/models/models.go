package models

import "time"

// DateLayout — формат календарной даты во всём API (YYYY-MM-DD).
const DateLayout = "2006-01-02"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Events []Event `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type Event struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"` // Владелец события
	Title     string `gorm:"size:200;not null"`
	Color     string `gorm:"size:7;not null"` // Цвет в формате #RRGGBB
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []EventItem `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

type EventItem struct {
	ID          uint      `gorm:"primaryKey"`
	EventID     uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"type:date;index;not null"` // Календарная дата записи
	Title       string    `gorm:"size:255;not null;default:''"`
	Time        *string   `gorm:"size:16"` // Свободный формат, например "14:30"
	Description *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToDict сериализует событие в форму ответа API.
// При includeItems=true вложенные записи должны быть предзагружены (Preload).
func (e *Event) ToDict(includeItems bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":         e.ID,
		"title":      e.Title,
		"color":      e.Color,
		"created_at": e.CreatedAt.Format(time.RFC3339),
		"updated_at": e.UpdatedAt.Format(time.RFC3339),
	}
	if includeItems {
		items := make([]map[string]interface{}, 0, len(e.Items))
		for i := range e.Items {
			items = append(items, e.Items[i].ToDict())
		}
		data["items"] = items
	}
	return data
}

// ToDict сериализует запись календаря в форму ответа API.
// Отсутствующие опциональные поля отдаются как null.
func (it *EventItem) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":          it.ID,
		"event_id":    it.EventID,
		"date":        it.Date.Format(DateLayout),
		"title":       it.Title,
		"time":        it.Time,
		"description": it.Description,
		"notes":       it.Notes,
		"created_at":  it.CreatedAt.Format(time.RFC3339),
		"updated_at":  it.UpdatedAt.Format(time.RFC3339),
	}
}
