package handlers

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"time"

	"colendar/internal/storage"

	"github.com/gin-gonic/gin"
)

// Структуры для декодирования ответа Nager.Date
type Holiday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Global      bool   `json:"global"`
}

var holidaysCtx = context.Background()

// GetHolidaysHandler обрабатывает запрос на получение государственных праздников
// @Summary		Получение праздников
// @Description	Получает список государственных праздников за год по коду страны, кэширует результат в Redis
// @Tags			holidays
// @Produce		json
// @Param			year	query		string	true	"Год (YYYY)"
// @Param			country	query		string	true	"Код страны (ISO 3166-1 alpha-2)"
// @Security		BearerAuth
// @Success		200		{array}		Holiday	"Список праздников"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации данных"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера"
// @Router			/api/holidays [get]
func GetHolidaysHandler(c *gin.Context) {
	year := c.Query("year")
	country := c.Query("country")
	if year == "" || country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Необходимо указать year и country"})
		return
	}

	cacheKey := "holidays_" + year + "_" + country
	redisClient := storage.RedisClient

	// Проверка кэша
	if redisClient != nil {
		cached, err := redisClient.Get(holidaysCtx, cacheKey).Result()
		if err == nil && cached != "" {
			var holidays []Holiday
			if err := json.Unmarshal([]byte(cached), &holidays); err == nil {
				c.JSON(http.StatusOK, holidays)
				return
			}
		}
	}

	// Запрос к внешнему API
	apiURL := "https://date.nager.at/api/v3/PublicHolidays/" + year + "/" + country
	resp, err := http.Get(apiURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить данные праздников"})
		return
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения ответа внешнего API"})
		return
	}

	var holidays []Holiday
	if err := json.Unmarshal(body, &holidays); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка декодирования данных праздников"})
		return
	}

	// Праздники не меняются — кэшируем на сутки.
	if redisClient != nil {
		redisClient.Set(holidaysCtx, cacheKey, string(body), time.Hour*24)
	}

	c.JSON(http.StatusOK, holidays)
}
