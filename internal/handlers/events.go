package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"colendar/internal/models"
	"colendar/internal/response"
	"colendar/internal/storage"
	"colendar/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// withItems предзагружает записи события в порядке вставки.
func withItems(db *gorm.DB) *gorm.DB {
	return db.Order("event_items.id ASC")
}

// findOwnedEvent загружает событие по id с проверкой владельца.
func findOwnedEvent(userID uint, eventID uint, preloadItems bool) (*models.Event, error) {
	q := storage.DB
	if preloadItems {
		q = q.Preload("Items", withItems)
	}
	var event models.Event
	if err := q.Where("id = ? AND user_id = ?", eventID, userID).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ListEventsHandler обрабатывает запрос на получение всех событий пользователя
// @Summary		Список событий
// @Description	Возвращает все события пользователя с вложенными записями, кэширует результат в Redis
// @Tags			events
// @Produce		json
// @Security		BearerAuth
// @Success		200	{array}		map[string]interface{}	"Список событий"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events [get]
func ListEventsHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	// Проверка кэша
	if cached, ok := storage.GetCachedEvents(userID); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	var events []models.Event
	if err := storage.DB.
		Preload("Items", withItems).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки событий",
			Details: err.Error(),
		})
		return
	}

	result := make([]map[string]interface{}, 0, len(events))
	for i := range events {
		result = append(result, events[i].ToDict(true))
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "SERIALIZATION_ERROR",
			Message: "Ошибка сериализации списка событий",
		})
		return
	}

	storage.CacheEvents(userID, payload)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// GetEventHandler обрабатывает запрос на получение одного события
// @Summary		Получение события
// @Description	Возвращает событие пользователя по id с вложенными записями
// @Tags			events
// @Produce		json
// @Param			id	path	int	true	"ID события"
// @Security		BearerAuth
// @Success		200	{object}	map[string]interface{}	"Событие"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Router			/api/events/{id} [get]
func GetEventHandler(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор события",
		})
		return
	}

	userID := c.GetUint("userID")
	event, err := findOwnedEvent(userID, uint(eventID), true)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие не найдено",
		})
		return
	}

	c.JSON(http.StatusOK, event.ToDict(true))
}

type CreateEventRequest struct {
	Title string `json:"title" binding:"required"`
	Color string `json:"color" binding:"required"`
}

// CreateEventHandler обрабатывает запрос на создание события
// @Summary		Создание события
// @Description	Создаёт новое событие (категорию календаря) с цветом
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			event	body	CreateEventRequest	true	"Данные события"
// @Security		BearerAuth
// @Success		201	{object}	map[string]interface{}	"Созданное событие"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events [post]
func CreateEventHandler(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	event := models.Event{
		UserID: userID,
		Title:  req.Title,
		Color:  req.Color,
	}

	if err := storage.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании события",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "event_created",
		Data:      map[string]interface{}{"event": event.ToDict(false)},
	})

	c.JSON(http.StatusCreated, event.ToDict(true))
}

type ReplaceEventRequest struct {
	ID    uint   `json:"id" binding:"required"`
	Title string `json:"title" binding:"required"`
	Color string `json:"color" binding:"required"`
}

// ReplaceEventHandler обрабатывает полное обновление события (PUT)
// @Summary		Полное обновление события
// @Description	Обновляет название и цвет события по id из тела запроса
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			event	body	ReplaceEventRequest	true	"Данные события"
// @Security		BearerAuth
// @Success		200	{object}	map[string]interface{}	"Обновлённое событие"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events [put]
func ReplaceEventHandler(c *gin.Context) {
	var req ReplaceEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	event, err := findOwnedEvent(userID, req.ID, true)
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Событие не найдено",
		})
		return
	}

	event.Title = req.Title
	event.Color = req.Color
	if err := storage.DB.Save(event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при обновлении события",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "event_updated",
		Data:      map[string]interface{}{"event": event.ToDict(false)},
	})

	c.JSON(http.StatusOK, event.ToDict(true))
}

// UpdateEventRequest — частичное обновление: nil-поле остаётся нетронутым.
type UpdateEventRequest struct {
	Title *string `json:"title"`
	Color *string `json:"color"`
}

// UpdateEventHandler обрабатывает частичное обновление события (PATCH)
// @Summary		Частичное обновление события
// @Description	Обновляет переданные поля события (title, color); null и отсутствующие поля игнорируются
// @Tags			events
// @Accept			json
// @Produce		json
// @Param			id		path	int					true	"ID события"
// @Param			event	body	UpdateEventRequest	true	"Изменяемые поля"
// @Security		BearerAuth
// @Success		200	{object}	map[string]interface{}	"Обновлённое событие"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id} [patch]
func UpdateEventHandler(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_EVENT_ID",
			Message: "Неверный идентификатор события",
		})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
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

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Color != nil {
		event.Color = *req.Color
	}

	if err := storage.DB.Save(event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при обновлении события",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "event_updated",
		Data:      map[string]interface{}{"event": event.ToDict(false)},
	})

	c.JSON(http.StatusOK, event.ToDict(false))
}

// DeleteEventHandler обрабатывает удаление события
// @Summary		Удаление события
// @Description	Удаляет событие и каскадно все его записи
// @Tags			events
// @Param			id	path	int	true	"ID события"
// @Security		BearerAuth
// @Success		204	"Событие удалено"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_EVENT_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Событие не найдено (EVENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/events/{id} [delete]
func DeleteEventHandler(c *gin.Context) {
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

	// Записи удаляются каскадно по внешнему ключу.
	if err := storage.DB.Delete(event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при удалении события",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "event_deleted",
		Data:      map[string]interface{}{"event_id": event.ID},
	})

	c.Status(http.StatusNoContent)
}
