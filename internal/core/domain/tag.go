package domain

import "time"

// Tag is a label attachable to tasks. Names are globally unique.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
