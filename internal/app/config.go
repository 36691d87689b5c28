package app

// BookshopConfig описывает настройки запуска сервиса каталога.
type BookshopConfig struct {
	// GRPCAddr — адрес бинарного RPC (BookshopService + ProductValidator).
	GRPCAddr string
	// HTTPAddr — адрес GraphQL API.
	HTTPAddr string
	// MetricsAddr — адрес /metrics и health-эндпоинтов.
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище; пустое значение оставляет
	// in-memory репозитории.
	PostgresDSN string
	// LibraryURL — GraphQL-адрес библиографической системы; пустое значение
	// отключает обогащение книг.
	LibraryURL string
	// KafkaBrokers — список брокеров через запятую; пустое значение
	// отключает публикацию событий.
	KafkaBrokers string
}

// DefaultBookshopConfig возвращает адреса по умолчанию для локального запуска.
func DefaultBookshopConfig() BookshopConfig {
	return BookshopConfig{
		GRPCAddr:    ":50051",
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// WorkshopConfig описывает настройки запуска складского сервиса.
type WorkshopConfig struct {
	// HTTPAddr — адрес REST API склада.
	HTTPAddr string
	// MetricsAddr — адрес /metrics и health-эндпоинтов.
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище; пустое значение оставляет
	// in-memory репозитории.
	PostgresDSN string
	// ValidatorAddr — gRPC-адрес каталога для валидации товаров.
	ValidatorAddr string
}

// DefaultWorkshopConfig возвращает адреса по умолчанию для локального запуска.
func DefaultWorkshopConfig() WorkshopConfig {
	return WorkshopConfig{
		HTTPAddr:      ":8081",
		MetricsAddr:   ":9091",
		ValidatorAddr: "localhost:50051",
	}
}
