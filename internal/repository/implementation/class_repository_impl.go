package implementation

import (
	"context"
	"errors"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/mapper"
	"mathclicks-be/internal/model"
	"mathclicks-be/internal/repository/contract"
	"mathclicks-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type ClassRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassMapper
}

func NewClassRepository(db *gorm.DB) contract.ClassRepository {
	return &ClassRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassMapper(),
	}
}

func (r *ClassRepositoryImpl) Create(ctx context.Context, class *entity.Class) error {
	m := r.mapper.ToModel(class)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*class = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) Update(ctx context.Context, class *entity.Class) error {
	m := r.mapper.ToModel(class)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*class = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClassRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Class{}, id).Error
}

func (r *ClassRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Class, error) {
	var m model.Class
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ClassRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Class{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type ClassMemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassMapper
}

func NewClassMemberRepository(db *gorm.DB) contract.ClassMemberRepository {
	return &ClassMemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassMapper(),
	}
}

// Upsert replaces the member's snapshot on (class_id, student_id) conflict.
// The sharing loop pushes whole snapshots, so last write wins.
func (r *ClassMemberRepositoryImpl) Upsert(ctx context.Context, member *entity.ClassMember) error {
	m := r.mapper.MemberToModel(member)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "class_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"student_name", "snapshot", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *ClassMemberRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ClassMember, error) {
	var m model.ClassMember
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MemberToEntity(&m), nil
}

func (r *ClassMemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ClassMember, error) {
	var models []*model.ClassMember
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MembersToEntities(models), nil
}

func (r *ClassMemberRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.ClassMember{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type AchievementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClassMapper
}

func NewAchievementRepository(db *gorm.DB) contract.AchievementRepository {
	return &AchievementRepositoryImpl{
		db:     db,
		mapper: mapper.NewClassMapper(),
	}
}

func (r *AchievementRepositoryImpl) Create(ctx context.Context, achievement *entity.Achievement) error {
	m := r.mapper.AchievementToModel(achievement)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*achievement = *r.mapper.AchievementToEntity(m)
	return nil
}

func (r *AchievementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Achievement, error) {
	var models []*model.Achievement
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.AchievementsToEntities(models), nil
}

func (r *AchievementRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Achievement{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
