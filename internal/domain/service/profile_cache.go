package service

import (
	"context"

	"midatopay/internal/domain/entity"
)

// ProfileCache keeps recently fetched external profiles. Implementations treat
// backend failures as misses.
type ProfileCache interface {
	Get(ctx context.Context, subjectID string) (*entity.ExternalProfile, bool)
	Set(ctx context.Context, profile *entity.ExternalProfile)
	Delete(ctx context.Context, subjectID string)
}
