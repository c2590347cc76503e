package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

const (
	// DefaultPageSize размер страницы по умолчанию
	DefaultPageSize = 10

	// WorkerQueueSize размер очереди воркера
	WorkerQueueSize = 128

	// RateLimitRequests количество запросов в окне
	RateLimitRequests = 30

	// RateLimitWindow окно ограничения частоты запросов в секундах
	RateLimitWindow = 60
)
