package responses

import "encoding/json"

// GeneralResponse is the success envelope every provider and CRUD route
// returns.
type GeneralResponse[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

func OK[T any](data T) GeneralResponse[T] {
	return GeneralResponse[T]{Success: true, Data: data}
}

// Raw wraps an upstream payload without re-encoding it.
func Raw(data json.RawMessage) GeneralResponse[json.RawMessage] {
	return OK(data)
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type ListResponse[T any] struct {
	Success  bool  `json:"success"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	Data     []T   `json:"data"`
}

// RateLimitExceededResponse is the 429 body contract.
type RateLimitExceededResponse struct {
	Status     int    `json:"status"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
	Timestamp  string `json:"timestamp"`
}
