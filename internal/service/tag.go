package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dezz1er/foodgram-project-react/internal/domain"
	"github.com/dezz1er/foodgram-project-react/internal/repo"
)

// hexColor matches "#RGB" and "#RRGGBB".
var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// TagService implements tag reads and administrative creation.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// Create validates and inserts a tag. The slug is normalized to lowercase.
// Returns domain.ErrConflict if the name or slug is taken.
func (s *TagService) Create(ctx context.Context, tag domain.Tag) (domain.Tag, error) {
	if strings.TrimSpace(tag.Name) == "" {
		return domain.Tag{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(tag.Slug) == "" {
		return domain.Tag{}, fmt.Errorf("%w: slug is required", domain.ErrValidation)
	}
	if !hexColor.MatchString(tag.Color) {
		return domain.Tag{}, fmt.Errorf("%w: color must be a hex color like #49B64E", domain.ErrValidation)
	}
	tag.Slug = strings.ToLower(tag.Slug)

	created, err := s.tags.Create(ctx, tag)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single tag.
func (s *TagService) GetByID(ctx context.Context, id uuid.UUID) (domain.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.GetByID: %w", err)
	}
	return tag, nil
}

// List returns all tags ordered by slug.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, nil
}
