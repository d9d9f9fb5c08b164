package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"colendar/internal/models"
	"colendar/internal/storage"
	"colendar/internal/ws"

	"github.com/robfig/cron/v3"
)

// reminderWindow — горизонт напоминаний: уведомляем о записях,
// до которых осталось не больше получаса.
const reminderWindow = 30 * time.Minute

var ctx = context.Background()

// reminderAt разбирает дату записи и свободное поле времени.
// Возвращает false, если время не распознаётся как HH:MM.
func reminderAt(item *models.EventItem, loc *time.Location) (time.Time, bool) {
	if item.Time == nil || *item.Time == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("15:04", *item.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(item.Date.Year(), item.Date.Month(), item.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, loc), true
}

// inReminderWindow сообщает, попадает ли момент t в окно (now, now+reminderWindow].
func inReminderWindow(t, now time.Time) bool {
	delta := t.Sub(now)
	return delta > 0 && delta <= reminderWindow
}

// markReminderSent отмечает отправку напоминания в Redis, чтобы соседние
// прогоны cron не дублировали его внутри окна. Без Redis шлём как есть.
func markReminderSent(itemID uint) bool {
	if storage.RedisClient == nil {
		return true
	}
	key := fmt.Sprintf("reminder_sent_item_%d", itemID)
	ok, err := storage.RedisClient.SetNX(ctx, key, "1", time.Hour).Result()
	if err != nil {
		return true
	}
	return ok
}

// NotifyUpcomingItems ищет записи на сегодня, чьё время попадает в ближайшие
// полчаса, и рассылает владельцам напоминания через WebSocket.
// Поле времени свободного формата: всё, что не разбирается как HH:MM,
// молча пропускается.
func NotifyUpcomingItems() {
	now := time.Now()
	today := now.Format(models.DateLayout)

	var items []models.EventItem
	if err := storage.DB.
		Where("date = ? AND time IS NOT NULL AND time <> ''", today).
		Find(&items).Error; err != nil {
		log.Println("Ошибка при поиске записей для напоминаний:", err)
		return
	}

	for i := range items {
		item := &items[i]
		at, ok := reminderAt(item, now.Location())
		if !ok || !inReminderWindow(at, now) {
			continue
		}
		if !markReminderSent(item.ID) {
			continue
		}

		var event models.Event
		if err := storage.DB.First(&event, item.EventID).Error; err != nil {
			continue
		}

		ws.HubInstance.BroadcastWSMessage(event.UserID, ws.WSMessage{
			EventType: "item_reminder",
			Data: map[string]interface{}{
				"item":        item.ToDict(),
				"event_title": event.Title,
			},
		})
	}
}

// InitScheduler инициализирует планировщик cron-задач.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Напоминания каждые 5 минут.
	_, err := c.AddFunc("0 */5 * * * *", NotifyUpcomingItems)
	if err != nil {
		log.Println("Ошибка запуска cron-задачи NotifyUpcomingItems:", err)
	}

	c.Start()
	log.Println("Cron-планировщик запущен.")
	return c
}
