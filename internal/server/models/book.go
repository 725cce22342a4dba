// Package models defines server-side data models persisted in the database.
package models

import "time"

// Book is a catalog record. Description and Year are optional.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description *string   `json:"description"`
	Year        *int      `json:"year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
