package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"colendar/internal/models"
	"colendar/internal/response"
	"colendar/internal/storage"

	ical "github.com/arran4/golang-ical"
	"github.com/gin-gonic/gin"
)

// exportDocument — переносимый JSON-формат события с записями.
// Тот же формат принимает импорт.
type exportDocument struct {
	Event exportEvent  `json:"event"`
	Items []exportItem `json:"items"`
}

type exportEvent struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type exportItem struct {
	Title string  `json:"title"`
	Date  string  `json:"date"`
	Time  *string `json:"time"`
	Notes *string `json:"notes"`
}

// loadExportItems загружает записи события в порядке (date, time).
func loadExportItems(eventID uint) ([]models.EventItem, error) {
	var items []models.EventItem
	err := storage.DB.
		Where("event_id = ?", eventID).
		Order("date ASC, time ASC").
		Find(&items).Error
	return items, err
}

// ExportEventHandler обрабатывает экспорт события в JSON
// @Summary		Экспорт события
// @Description	Сериализует событие с записями в переносимый JSON-документ
// @Tags			export
// @Produce		json
// @Param			id	path	int	true	"ID события"
// @Security		BearerAuth
// @Success		200	{object}	response.ExportResponse	"Экспортированное событие"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/export/event/{id} [get]
func ExportEventHandler(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор события",
		})
		return
	}

	userID := c.GetUint("userID")
	event, err := findOwnedEvent(userID, uint(eventID), false)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие не найдено",
		})
		return
	}

	items, err := loadExportItems(event.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки записей",
			Details: err.Error(),
		})
		return
	}

	doc := exportDocument{
		Event: exportEvent{Title: event.Title, Color: event.Color},
		Items: make([]exportItem, 0, len(items)),
	}
	for i := range items {
		doc.Items = append(doc.Items, exportItem{
			Title: items[i].Title,
			Date:  items[i].Date.Format(models.DateLayout),
			Time:  items[i].Time,
			Notes: items[i].Notes,
		})
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "SERIALIZATION_ERROR",
			Message: "Ошибка сериализации экспорта",
		})
		return
	}

	c.JSON(http.StatusOK, response.ExportResponse{
		ExportText: string(payload),
		EventTitle: event.Title,
		ItemsCount: len(doc.Items),
	})
}

// ExportEventICSHandler обрабатывает экспорт события в формат iCalendar
// @Summary		Экспорт события в iCalendar
// @Description	Отдаёт записи события как VCALENDAR; записи без распознаваемого времени становятся событиями на весь день
// @Tags			export
// @Produce		text/calendar
// @Param			id	path	int	true	"ID события"
// @Security		BearerAuth
// @Success		200	{string}	string	"Документ iCalendar"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/export/event/{id}/ics [get]
func ExportEventICSHandler(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор события",
		})
		return
	}

	userID := c.GetUint("userID")
	event, err := findOwnedEvent(userID, uint(eventID), false)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие не найдено",
		})
		return
	}

	items, err := loadExportItems(event.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки записей",
			Details: err.Error(),
		})
		return
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//colendar//RU")

	now := time.Now()
	for i := range items {
		it := &items[i]
		ve := cal.AddEvent(fmt.Sprintf("item-%d@colendar", it.ID))
		ve.SetCreatedTime(it.CreatedAt)
		ve.SetModifiedAt(it.UpdatedAt)
		ve.SetDtStampTime(now)
		ve.SetSummary(it.Title)
		if it.Description != nil {
			ve.SetDescription(*it.Description)
		}

		// Время хранится свободной строкой: распознаём HH:MM,
		// иначе запись экспортируется как событие на весь день.
		start := it.Date
		if it.Time != nil {
			if t, perr := time.Parse("15:04", *it.Time); perr == nil {
				start = time.Date(it.Date.Year(), it.Date.Month(), it.Date.Day(),
					t.Hour(), t.Minute(), 0, 0, time.Local)
				ve.SetStartAt(start)
				ve.SetEndAt(start.Add(time.Hour))
				continue
			}
		}
		ve.SetAllDayStartAt(start)
		ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"event-%d.ics\"", event.ID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}
