package contract

import (
	"context"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	Update(ctx context.Context, class *entity.Class) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Class, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ClassMemberRepository interface {
	Upsert(ctx context.Context, member *entity.ClassMember) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClassMember, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ClassMember, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type AchievementRepository interface {
	Create(ctx context.Context, achievement *entity.Achievement) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Achievement, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
