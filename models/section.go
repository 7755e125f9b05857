package models

import "time"

type Section struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateSectionRequest struct {
	Name string `json:"name" binding:"required"`
}
