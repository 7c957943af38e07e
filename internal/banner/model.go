package banner

import (
	"errors"
	"strings"
	"time"
)

// ErrNoContent rejects a banner with nothing to show. At least one of the
// content fields must be present.
var ErrNoContent = errors.New("banner needs at least one of title, titleBn, image or link")

var ErrNotFound = errors.New("banner not found")

type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	TitleBN   string    `json:"titleBn,omitempty"`
	Image     string    `json:"image,omitempty"`
	Link      string    `json:"link,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func (b *Banner) Validate() error {
	if strings.TrimSpace(b.Title) == "" &&
		strings.TrimSpace(b.TitleBN) == "" &&
		strings.TrimSpace(b.Image) == "" &&
		strings.TrimSpace(b.Link) == "" {
		return ErrNoContent
	}
	return nil
}
