package unitofwork

import (
	"context"

	"mathclicks-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ClassRepository() contract.ClassRepository
	ClassMemberRepository() contract.ClassMemberRepository
	AchievementRepository() contract.AchievementRepository
}
