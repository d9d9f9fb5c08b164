package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"colendar/internal/models"
	"colendar/internal/response"
	"colendar/internal/storage"

	"github.com/gin-gonic/gin"
)

// titleDatePatterns — хвостовые датовые суффиксы в порядке приоритета:
// тире+ISO-дата, голая ISO-дата, тире+порядковая дата ("12th Aug, 2025"),
// голая порядковая дата.
var titleDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s*[-–—]\s*\d{4}-\d{2}-\d{2}\s*$`),
	regexp.MustCompile(`\s*\d{4}-\d{2}-\d{2}\s*$`),
	regexp.MustCompile(`\s*[-–—]\s*\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,}\.?,?\s+\d{4}\s*$`),
	regexp.MustCompile(`\s*\d{1,2}(?:st|nd|rd|th)?\s+[A-Za-z]{3,}\.?,?\s+\d{4}\s*$`),
}

// stripTitleDateSuffix убирает хвостовой датовый суффикс из названия записи.
func stripTitleDateSuffix(title string) string {
	out := title
	for _, re := range titleDatePatterns {
		out = re.ReplaceAllString(out, "")
	}
	return strings.TrimSpace(out)
}

// StripItemTitleDatesHandler обрабатывает пакетную чистку названий записей
// @Summary		Удаление датовых суффиксов из названий записей
// @Description	Проходит по всем записям пользователя и убирает хвостовые даты из названий; сохраняются только изменившиеся записи, без общей транзакции
// @Tags			maintenance
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.MaintenanceResponse	"Количество обновлённых записей"
// @Failure		500	{object}	response.ErrorResponse			"Ошибка сервера (DB_ERROR)"
// @Router			/api/maintenance/strip-item-title-dates [post]
func StripItemTitleDatesHandler(c *gin.Context) {
	userID := c.GetUint("userID")

	var items []models.EventItem
	if err := storage.DB.
		Joins("JOIN events ON events.id = event_items.event_id").
		Where("events.user_id = ?", userID).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка загрузки записей",
			Details: err.Error(),
		})
		return
	}

	updated := 0
	for i := range items {
		item := &items[i]
		cleaned := stripTitleDateSuffix(item.Title)
		if cleaned == item.Title {
			continue
		}
		// Построчная запись: частичный прогон оставляет часть записей обновлёнными.
		if err := storage.DB.Model(item).Update("title", cleaned).Error; err != nil {
			continue
		}
		updated++
	}

	if updated > 0 {
		storage.InvalidateEventsCache(userID)
	}

	c.JSON(http.StatusOK, response.MaintenanceResponse{Updated: updated})
}
