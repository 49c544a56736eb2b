package models

import (
	"fmt"
	"time"
)

// Teaching is a quote from the library (content plus attribution).
type Teaching struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Teaching) Validate() error {
	if t.Content == "" {
		return fmt.Errorf("teaching content cannot be empty")
	}
	return nil
}

// Image is a named frame style a card can be rendered with. The style name
// selects a terminal frame rendering.
type Image struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Style   string `json:"style"` // lipgloss frame style name
	Builtin bool   `json:"builtin,omitempty"`
}

// Card is a shareable quote card: teaching text over an image frame.
type Card struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Source    string    `json:"source,omitempty"`
	ImageID   string    `json:"image_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Card) Validate() error {
	if c.Text == "" {
		return fmt.Errorf("card text cannot be empty")
	}
	return nil
}
