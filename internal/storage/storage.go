package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}

	DB = db
	fmt.Println("Подключение к базе данных успешно!")
}

func ConnectTestingDatabase() {
	host := os.Getenv("TEST_DB_HOST")
	port := os.Getenv("TEST_DB_PORT")
	user := os.Getenv("TEST_DB_USER")
	password := os.Getenv("TEST_DB_PASSWORD")
	dbname := os.Getenv("TEST_DB_NAME")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}

	DB = db
	fmt.Println("Подключение к базе данных успешно!")
}

var (
	ctx         = context.Background()
	RedisClient *redis.Client
)

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// EventsCacheKey — ключ кэша списка событий пользователя.
func EventsCacheKey(userID uint) string {
	return fmt.Sprintf("events_user_%d", userID)
}

// GetCachedEvents возвращает закэшированный JSON списка событий пользователя.
func GetCachedEvents(userID uint) (string, bool) {
	if RedisClient == nil {
		return "", false
	}
	cached, err := RedisClient.Get(ctx, EventsCacheKey(userID)).Result()
	if err != nil || cached == "" {
		return "", false
	}
	return cached, true
}

// CacheEvents кладёт сериализованный список событий пользователя в кэш.
func CacheEvents(userID uint, payload []byte) {
	if RedisClient == nil {
		return
	}
	RedisClient.Set(ctx, EventsCacheKey(userID), string(payload), 5*time.Minute)
}

// InvalidateEventsCache сбрасывает кэш списка событий после любой записи.
func InvalidateEventsCache(userID uint) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, EventsCacheKey(userID))
}
