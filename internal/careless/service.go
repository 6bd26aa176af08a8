package careless

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"
)

// Service records careless mistakes from raw uploads.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a Service that stamps uploads with the current time in loc.
func NewService(repo Repository, loc *time.Location) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

// Record stores an uploaded image and its reflection as a new mistake.
func (s *Service) Record(ctx context.Context, image []byte, reflection string) (*Mistake, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("empty image")
	}
	m := &Mistake{
		UploadedAt:       s.now().Truncate(time.Second),
		OriginalImageB64: base64.StdEncoding.EncodeToString(image),
		Reflection:       reflection,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("repo.Create() > %w", err)
	}
	return m, nil
}
