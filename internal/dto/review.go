package dto

import "time"

type ReviewCreateDTO struct {
	RoomID  uint    `json:"room_id"`
	Rating  float64 `json:"rating"`
	Message string  `json:"message"`
}

// NewReviewCreateDTO reads a validated create-review input.
func NewReviewCreateDTO(input map[string]any) *ReviewCreateDTO {
	return &ReviewCreateDTO{
		RoomID:  Uint(input["room_id"]),
		Rating:  Float(input["rating"]),
		Message: String(input["message"]),
	}
}

type ReviewResponseDTO struct {
	ID        uint      `json:"review_id"`
	RoomID    uint      `json:"room_id"`
	UserID    uint      `json:"user_id"`
	Rating    float64   `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Page is a length-aware page of results.
type Page[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

func NewPage[T any](data []T, page, perPage int, total int64) Page[T] {
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data:        data,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
