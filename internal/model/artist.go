package model

import "time"

type Artist struct {
	ID        int64     `json:"artist_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
