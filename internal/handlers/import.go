package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"colendar/internal/models"
	"colendar/internal/response"
	"colendar/internal/storage"
	"colendar/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// importPalette — фиксированная палитра для событий без цвета в импорте.
var importPalette = []string{
	"#7c5cff", "#ff6b6b", "#feca57", "#1dd1a1",
	"#54a0ff", "#5f27cd", "#ff9ff3", "#00d2d3",
}

type ImportRequest struct {
	// JSON-строка в формате экспорта (event + items)
	Data string `json:"data" binding:"required"`
}

// ImportHandler обрабатывает импорт события с записями
// @Summary		Импорт события
// @Description	Импортирует JSON-документ формата экспорта; событие ищется по точному совпадению названия, записи — по (title, date); дубликаты и битые записи молча пропускаются
// @Tags			export
// @Accept			json
// @Produce		json
// @Param			payload	body	ImportRequest	true	"JSON-строка экспорта в поле data"
// @Security		BearerAuth
// @Success		200	{object}	response.ImportResponse	"Счётчики созданных строк"
// @Failure		400	{object}	response.ErrorResponse	"Структурная ошибка (VALIDATION_ERROR, INVALID_JSON, INVALID_STRUCTURE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/import [post]
func ImportHandler(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	// Внешний конверт: оба ключа обязаны присутствовать.
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(req.Data), &envelope); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_JSON",
			Message: "Поле data не является корректным JSON",
			Details: err.Error(),
		})
		return
	}
	rawEvent, hasEvent := envelope["event"]
	rawItems, hasItems := envelope["items"]
	if !hasEvent || !hasItems {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STRUCTURE",
			Message: "Документ импорта должен содержать ключи event и items",
		})
		return
	}

	var docEvent exportEvent
	if err := json.Unmarshal(rawEvent, &docEvent); err != nil || docEvent.Title == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STRUCTURE",
			Message: "Поле event.title обязательно",
		})
		return
	}

	var docItems []exportItem
	if err := json.Unmarshal(rawItems, &docItems); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STRUCTURE",
			Message: "Поле items должно быть списком записей",
		})
		return
	}

	userID := c.GetUint("userID")
	eventsCreated := 0

	// Дедупликация события: точное совпадение названия с учётом регистра.
	var event models.Event
	if err := storage.DB.Where("user_id = ? AND title = ?", userID, docEvent.Title).First(&event).Error; err != nil {
		// Создаём только при подтверждённом отсутствии: на сбое чтения
		// нельзя плодить дубликат события.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка поиска события",
				Details: err.Error(),
			})
			return
		}
		color := docEvent.Color
		if color == "" {
			color = importPalette[rand.Intn(len(importPalette))]
		}
		event = models.Event{UserID: userID, Title: docEvent.Title, Color: color}
		if err := storage.DB.Create(&event).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка при создании события",
				Details: err.Error(),
			})
			return
		}
		eventsCreated = 1
	}

	// Записи импортируются по одной, без общей транзакции:
	// каждая проблемная запись пропускается молча.
	itemsCreated := 0
	for i := range docItems {
		di := &docItems[i]
		if di.Title == "" || di.Date == "" {
			continue
		}
		date, err := time.Parse(models.DateLayout, di.Date)
		if err != nil {
			continue
		}
		var existing models.EventItem
		err = storage.DB.
			Where("event_id = ? AND title = ? AND date = ?", event.ID, di.Title, date.Format(models.DateLayout)).
			First(&existing).Error
		if err == nil {
			continue
		}
		// Сбой проверки дубликата — запись пропускается, а не создаётся вслепую.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		item := models.EventItem{
			EventID: event.ID,
			Date:    date,
			Title:   di.Title,
			Time:    di.Time,
			Notes:   di.Notes,
		}
		if err := storage.DB.Create(&item).Error; err != nil {
			continue
		}
		itemsCreated++
	}

	if eventsCreated > 0 || itemsCreated > 0 {
		storage.InvalidateEventsCache(userID)
		ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
			EventType: "import_completed",
			Data: map[string]interface{}{
				"event_id":       event.ID,
				"events_created": eventsCreated,
				"items_created":  itemsCreated,
			},
		})
	}

	c.JSON(http.StatusOK, response.ImportResponse{
		Success:       true,
		EventsCreated: eventsCreated,
		ItemsCreated:  itemsCreated,
	})
}
