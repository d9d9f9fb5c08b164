package response

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: поле date должно быть в формате YYYY-MM-DD
	Details string `json:"details,omitempty"`
}

// TokenResponse представляет ответ с токенами авторизации
type TokenResponse struct {
	// JWT токен для доступа к защищенным эндпоинтам
	AccessToken string `json:"access_token"`

	// JWT токен для обновления access токена
	RefreshToken string `json:"refresh_token"`
}

// ExportResponse представляет результат экспорта события
type ExportResponse struct {
	// Сырой JSON-документ экспорта (event + items)
	ExportText string `json:"export_text"`

	// Название экспортированного события
	EventTitle string `json:"event_title"`

	// Количество записей в экспорте
	ItemsCount int `json:"items_count"`
}

// ImportResponse представляет результат импорта
type ImportResponse struct {
	Success       bool `json:"success"`
	EventsCreated int  `json:"events_created"`
	ItemsCreated  int  `json:"items_created"`
}

// MaintenanceResponse представляет результат обслуживающей операции
type MaintenanceResponse struct {
	// Количество обновлённых записей
	Updated int `json:"updated"`
}
