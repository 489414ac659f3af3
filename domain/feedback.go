package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one visitor submission from the feedback widget.
type Feedback struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name" validate:"required,max=200"`
	Design                string    `json:"design" validate:"required,max=2000"`
	Usability             string    `json:"usability" validate:"required,max=2000"`
	Content               string    `json:"content" validate:"required,max=2000"`
	AdditionalSuggestions string    `json:"additionalSuggestions,omitempty" validate:"max=4000"`
	Date                  time.Time `json:"date"`
}
