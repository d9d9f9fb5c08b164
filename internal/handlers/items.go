package handlers

import (
	"net/http"
	"strconv"
	"time"

	"colendar/internal/models"
	"colendar/internal/response"
	"colendar/internal/storage"
	"colendar/internal/ws"

	"github.com/gin-gonic/gin"
)

// findOwnedItem загружает запись по id с проверкой владельца через родительское событие.
func findOwnedItem(userID uint, itemID uint) (*models.EventItem, *models.Event, error) {
	var item models.EventItem
	if err := storage.DB.First(&item, itemID).Error; err != nil {
		return nil, nil, err
	}
	var event models.Event
	if err := storage.DB.Where("id = ? AND user_id = ?", item.EventID, userID).First(&event).Error; err != nil {
		return nil, nil, err
	}
	return &item, &event, nil
}

// ListItemsHandler обрабатывает запрос на получение записей календаря
// @Summary		Список записей
// @Description	Возвращает записи пользователя с необязательными фильтрами по event_id и date
// @Tags			items
// @Produce		json
// @Param			event_id	query	int		false	"Фильтр по событию"
// @Param			date		query	string	false	"Фильтр по дате (YYYY-MM-DD)"
// @Security		BearerAuth
// @Success		200	{array}		map[string]interface{}	"Список записей"
// @Failure		422	{object}	response.ErrorResponse	"Неверный формат даты (INVALID_DATE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/items [get]
func ListItemsHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	q := storage.DB.
		Joins("JOIN events ON events.id = event_items.event_id").
		Where("events.user_id = ?", userID)

	if eventID := c.Query("event_id"); eventID != "" {
		q = q.Where("event_items.event_id = ?", eventID)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(models.DateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{
				Code:    "INVALID_DATE",
				Message: "Неверный формат даты",
				Details: "Ожидается формат YYYY-MM-DD",
			})
			return
		}
		q = q.Where("event_items.date = ?", date.Format(models.DateLayout))
	}

	var items []models.EventItem
	if err := q.Order("event_items.id ASC").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки записей",
			Details: err.Error(),
		})
		return
	}

	result := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		result = append(result, items[i].ToDict())
	}

	c.JSON(http.StatusOK, result)
}

type CreateItemRequest struct {
	EventID     uint    `json:"event_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Title       string  `json:"title"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
}

// CreateItemHandler обрабатывает создание записи календаря
// @Summary		Создание записи
// @Description	Создаёт запись в событии пользователя; дата обязательна и разбирается строго как YYYY-MM-DD
// @Tags			items
// @Accept			json
// @Produce		json
// @Param			item	body	CreateItemRequest	true	"Данные записи"
// @Security		BearerAuth
// @Success		201	{object}	map[string]interface{}	"Созданная запись"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR)"
// @Failure		404	{object}	response.ErrorResponse	"Родительское событие не найдено (EVENT_NOT_FOUND)"
// @Failure		422	{object}	response.ErrorResponse	"Неверный формат даты (INVALID_DATE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/items [post]
func CreateItemHandler(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{
			Code:    "INVALID_DATE",
			Message: "Неверный формат даты",
			Details: "Ожидается формат YYYY-MM-DD",
		})
		return
	}

	userID := c.GetUint("userID")
	var event models.Event
	if err := storage.DB.Where("id = ? AND user_id = ?", req.EventID, userID).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "EVENT_NOT_FOUND",
			Message: "Родительское событие не найдено",
		})
		return
	}

	item := models.EventItem{
		EventID:     event.ID,
		Date:        date,
		Title:       req.Title,
		Time:        req.Time,
		Description: req.Description,
		Notes:       req.Notes,
	}

	if err := storage.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при создании записи",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "item_created",
		Data:      map[string]interface{}{"item": item.ToDict()},
	})

	c.JSON(http.StatusCreated, item.ToDict())
}

// UpdateItemRequest — частичное обновление: nil-поле остаётся нетронутым,
// очистка выполняется явной пустой строкой.
type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
}

// UpdateItemHandler обрабатывает частичное обновление записи (PATCH)
// @Summary		Частичное обновление записи
// @Description	Обновляет переданные поля записи; дата разбирается строго как YYYY-MM-DD
// @Tags			items
// @Accept			json
// @Produce		json
// @Param			id		path	int					true	"ID записи"
// @Param			item	body	UpdateItemRequest	true	"Изменяемые поля"
// @Security		BearerAuth
// @Success		200	{object}	map[string]interface{}	"Обновлённая запись"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_ITEM_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (ITEM_NOT_FOUND)"
// @Failure		422	{object}	response.ErrorResponse	"Неверный формат даты (INVALID_DATE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/items/{id} [patch]
func UpdateItemHandler(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ITEM_ID",
			Message: "Неверный идентификатор записи",
		})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	userID := c.GetUint("userID")
	item, _, err := findOwnedItem(userID, uint(itemID))
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "ITEM_NOT_FOUND",
			Message: "Запись не найдена",
		})
		return
	}

	if req.Date != nil {
		date, err := time.Parse(models.DateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, response.ErrorResponse{
				Code:    "INVALID_DATE",
				Message: "Неверный формат даты",
				Details: "Ожидается формат YYYY-MM-DD",
			})
			return
		}
		item.Date = date
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Time != nil {
		item.Time = req.Time
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}

	if err := storage.DB.Save(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при обновлении записи",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "item_updated",
		Data:      map[string]interface{}{"item": item.ToDict()},
	})

	c.JSON(http.StatusOK, item.ToDict())
}

// DeleteItemHandler обрабатывает удаление записи
// @Summary		Удаление записи
// @Description	Удаляет запись календаря
// @Tags			items
// @Param			id	path	int	true	"ID записи"
// @Security		BearerAuth
// @Success		204	"Запись удалена"
// @Failure		400	{object}	response.ErrorResponse	"Неверный идентификатор (INVALID_ITEM_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Запись не найдена (ITEM_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/items/{id} [delete]
func DeleteItemHandler(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_ITEM_ID",
			Message: "Неверный идентификатор записи",
		})
		return
	}

	userID := c.GetUint("userID")
	item, _, err := findOwnedItem(userID, uint(itemID))
	if err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "ITEM_NOT_FOUND",
			Message: "Запись не найдена",
		})
		return
	}

	if err := storage.DB.Delete(item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка при удалении записи",
			Details: err.Error(),
		})
		return
	}

	storage.InvalidateEventsCache(userID)
	ws.HubInstance.BroadcastWSMessage(userID, ws.WSMessage{
		EventType: "item_deleted",
		Data:      map[string]interface{}{"item_id": item.ID, "event_id": item.EventID},
	})

	c.Status(http.StatusNoContent)
}
