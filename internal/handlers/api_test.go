package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"colendar/internal/handlers"
	"colendar/internal/models"
	"colendar/internal/storage"
	"colendar/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hubOnce sync.Once

// AuthMiddlewareTest подставляет userID из заголовка X-Test-UserID вместо JWT.
func AuthMiddlewareTest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.Request.Header.Get("X-Test-UserID")
		if userIDStr == "" {
			c.Set("userID", uint(1))
		} else {
			id, err := strconv.Atoi(userIDStr)
			if err != nil {
				c.Set("userID", uint(1))
			} else {
				c.Set("userID", uint(id))
			}
		}
		c.Next()
	}
}

func setupTestServer(t *testing.T) *httptest.Server {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		if err := godotenv.Load("../../.env"); err != nil && os.Getenv("TEST_DB_HOST") == "" {
			t.Skip("Нет .env и TEST_DB_HOST — интеграционные тесты пропущены")
		}
	}
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST не задан — интеграционные тесты пропущены")
	}

	gin.SetMode(gin.TestMode)

	storage.ConnectTestingDatabase()

	if err := storage.DB.AutoMigrate(&models.User{}, &models.Event{}, &models.EventItem{}); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}
	storage.DB.Exec("TRUNCATE TABLE users, events, event_items RESTART IDENTITY CASCADE;")

	storage.InitRedis()

	hubOnce.Do(func() {
		go ws.HubInstance.Run()
	})

	r := gin.Default()

	api := r.Group("/api", AuthMiddlewareTest())
	{
		api.GET("/events", handlers.ListEventsHandler)
		api.POST("/events", handlers.CreateEventHandler)
		api.PUT("/events", handlers.ReplaceEventHandler)
		api.GET("/events/:id", handlers.GetEventHandler)
		api.PATCH("/events/:id", handlers.UpdateEventHandler)
		api.DELETE("/events/:id", handlers.DeleteEventHandler)
		api.GET("/items", handlers.ListItemsHandler)
		api.POST("/items", handlers.CreateItemHandler)
		api.PATCH("/items/:id", handlers.UpdateItemHandler)
		api.DELETE("/items/:id", handlers.DeleteItemHandler)
		api.GET("/export/event/:id", handlers.ExportEventHandler)
		api.GET("/export/event/:id/ics", handlers.ExportEventICSHandler)
		api.POST("/import", handlers.ImportHandler)
		api.POST("/maintenance/strip-item-title-dates", handlers.StripItemTitleDatesHandler)
	}

	return httptest.NewServer(r)
}

func createTestUser(t *testing.T, name string) *models.User {
	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s_%d@example.com", name, time.Now().UnixNano()),
		PasswordHash: "hashed123",
	}
	require.NoError(t, storage.DB.Create(&user).Error)
	return &user
}

// doJSON выполняет запрос от имени пользователя и возвращает статус и тело.
func doJSON(t *testing.T, ts *httptest.Server, method, path string, userID uint, body interface{}) (int, []byte) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-UserID", fmt.Sprintf("%d", userID))
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestEventCRUDAndIsolation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	user1 := createTestUser(t, "ivan")
	user2 := createTestUser(t, "petr")

	// Создание события.
	status, body := doJSON(t, ts, "POST", "/api/events", user1.ID,
		gin.H{"title": "Работа", "color": "#ff6b6b"})
	require.Equal(t, http.StatusCreated, status, string(body))

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &created))
	eventID := uint(created["id"].(float64))

	// Владелец при перечитывании совпадает с создателем.
	var stored models.Event
	require.NoError(t, storage.DB.First(&stored, eventID).Error)
	assert.Equal(t, user1.ID, stored.UserID)

	// Чужой пользователь не видит и не меняет событие.
	status, _ = doJSON(t, ts, "GET", fmt.Sprintf("/api/events/%d", eventID), user2.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, ts, "PATCH", fmt.Sprintf("/api/events/%d", eventID), user2.ID, gin.H{"title": "Чужое"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, ts, "DELETE", fmt.Sprintf("/api/events/%d", eventID), user2.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Частичное обновление владельцем.
	status, body = doJSON(t, ts, "PATCH", fmt.Sprintf("/api/events/%d", eventID), user1.ID, gin.H{"title": "Офис"})
	require.Equal(t, http.StatusOK, status)
	var patched map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &patched))
	assert.Equal(t, "Офис", patched["title"])
	assert.Equal(t, "#ff6b6b", patched["color"])

	// Создание записи.
	status, body = doJSON(t, ts, "POST", "/api/items", user1.ID,
		gin.H{"event_id": eventID, "date": "2025-09-01", "title": "Встреча", "time": "14:30"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var item map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &item))
	itemID := uint(item["id"].(float64))
	assert.Equal(t, "2025-09-01", item["date"])

	// Невалидная дата отклоняется и ничего не сохраняет.
	var before int64
	storage.DB.Model(&models.EventItem{}).Count(&before)
	status, _ = doJSON(t, ts, "POST", "/api/items", user1.ID,
		gin.H{"event_id": eventID, "date": "2025-13-40", "title": "Сломанная"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	var after int64
	storage.DB.Model(&models.EventItem{}).Count(&after)
	assert.Equal(t, before, after)

	// Чужая запись недоступна.
	status, _ = doJSON(t, ts, "PATCH", fmt.Sprintf("/api/items/%d", itemID), user2.ID, gin.H{"title": "Чужая"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, ts, "DELETE", fmt.Sprintf("/api/items/%d", itemID), user2.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Фильтры списка записей.
	status, body = doJSON(t, ts, "GET", fmt.Sprintf("/api/items?event_id=%d", eventID), user1.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Len(t, items, 1)

	status, body = doJSON(t, ts, "GET", "/api/items?date=2025-09-01", user1.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Len(t, items, 1)

	// Удаление события каскадно удаляет записи.
	status, _ = doJSON(t, ts, "DELETE", fmt.Sprintf("/api/events/%d", eventID), user1.ID, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, body = doJSON(t, ts, "GET", fmt.Sprintf("/api/items?event_id=%d", eventID), user1.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &items))
	assert.Empty(t, items)

	var orphans int64
	storage.DB.Model(&models.EventItem{}).Where("event_id = ?", eventID).Count(&orphans)
	assert.Equal(t, int64(0), orphans, "записи должны удаляться каскадно")
}

func TestImportIdempotency(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	user := createTestUser(t, "anna")

	data := `{"event":{"title":"Trip"},"items":[{"title":"Pack","date":"2025-01-01"}]}`

	status, body := doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{"data": data})
	require.Equal(t, http.StatusOK, status, string(body))
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, true, result["success"])
	assert.Equal(t, float64(1), result["events_created"])
	assert.Equal(t, float64(1), result["items_created"])

	// Повторный импорт того же документа ничего не создаёт.
	status, body = doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{"data": data})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(0), result["events_created"])
	assert.Equal(t, float64(0), result["items_created"])

	// Битые записи пропускаются молча, валидные создаются.
	data = `{"event":{"title":"Trip"},"items":[{"title":"","date":"2025-01-02"},{"title":"NoDate"},{"title":"Tickets","date":"2025-99-99"},{"title":"Hotel","date":"2025-01-03"}]}`
	status, body = doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{"data": data})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(0), result["events_created"])
	assert.Equal(t, float64(1), result["items_created"])

	// Структурные ошибки возвращают 400.
	status, _ = doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{"data": "не json"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{"data": `{"event":{"title":"X"}}`})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestExportImportRoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	user := createTestUser(t, "maria")

	status, body := doJSON(t, ts, "POST", "/api/events", user.ID,
		gin.H{"title": "Отпуск", "color": "#54a0ff"})
	require.Equal(t, http.StatusCreated, status)
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &event))
	eventID := uint(event["id"].(float64))

	for _, it := range []gin.H{
		{"event_id": eventID, "date": "2025-07-01", "title": "Билеты", "time": "09:00"},
		{"event_id": eventID, "date": "2025-07-02", "title": "Отель", "notes": "бронь 1234"},
	} {
		status, body = doJSON(t, ts, "POST", "/api/items", user.ID, it)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body = doJSON(t, ts, "GET", fmt.Sprintf("/api/export/event/%d", eventID), user.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var export map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &export))
	assert.Equal(t, "Отпуск", export["event_title"])
	assert.Equal(t, float64(2), export["items_count"])

	exportText := export["export_text"].(string)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(exportText), &doc))

	// Импорт собственного экспорта не создаёт ни одной строки.
	status, body = doJSON(t, ts, "POST", "/api/import", user.ID, gin.H{"data": exportText})
	require.Equal(t, http.StatusOK, status)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(0), result["events_created"])
	assert.Equal(t, float64(0), result["items_created"])
}

func TestExportEventICS(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	user := createTestUser(t, "dima")

	status, body := doJSON(t, ts, "POST", "/api/events", user.ID,
		gin.H{"title": "Поездки", "color": "#5f27cd"})
	require.Equal(t, http.StatusCreated, status)
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &event))
	eventID := uint(event["id"].(float64))

	// Одна запись с распознаваемым временем, одна со свободным текстом.
	for _, it := range []gin.H{
		{"event_id": eventID, "date": "2025-07-01", "title": "Поезд", "time": "14:30"},
		{"event_id": eventID, "date": "2025-07-02", "title": "Музей", "time": "утром"},
	} {
		status, body = doJSON(t, ts, "POST", "/api/items", user.ID, it)
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body = doJSON(t, ts, "GET", fmt.Sprintf("/api/export/event/%d/ics", eventID), user.ID, nil)
	require.Equal(t, http.StatusOK, status)

	ics := string(body)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "SUMMARY:Поезд")
	assert.Contains(t, ics, "SUMMARY:Музей")

	// Запись со временем — часовое событие, без времени — на весь день.
	assert.Equal(t, 1, strings.Count(ics, "DTSTART:"), "ровно одно событие с конкретным временем")
	assert.Equal(t, 1, strings.Count(ics, "DTEND:"))
	assert.Equal(t, 1, strings.Count(ics, "DTSTART;VALUE=DATE"), "ровно одно событие на весь день")
	assert.Equal(t, 1, strings.Count(ics, "DTEND;VALUE=DATE"))
}

func TestStripItemTitleDates(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	user := createTestUser(t, "oleg")

	status, body := doJSON(t, ts, "POST", "/api/events", user.ID,
		gin.H{"title": "Встречи", "color": "#1dd1a1"})
	require.Equal(t, http.StatusCreated, status)
	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &event))
	eventID := uint(event["id"].(float64))

	for _, title := range []string{"Standup - 2025-08-12", "Call 12th Aug, 2025", "No date here"} {
		status, body = doJSON(t, ts, "POST", "/api/items", user.ID,
			gin.H{"event_id": eventID, "date": "2025-08-12", "title": title})
		require.Equal(t, http.StatusCreated, status, string(body))
	}

	status, body = doJSON(t, ts, "POST", "/api/maintenance/strip-item-title-dates", user.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(2), result["updated"])

	status, body = doJSON(t, ts, "GET", fmt.Sprintf("/api/items?event_id=%d", eventID), user.ID, nil)
	require.Equal(t, http.StatusOK, status)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it["title"].(string))
	}
	assert.ElementsMatch(t, []string{"Standup", "Call", "No date here"}, titles)

	// Повторный прогон ничего не меняет.
	status, body = doJSON(t, ts, "POST", "/api/maintenance/strip-item-title-dates", user.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(0), result["updated"])
}
