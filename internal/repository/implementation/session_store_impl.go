package implementation

import (
	"context"
	"errors"

	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/mapper"
	"mathclicks-be/internal/model"
	"mathclicks-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionStoreImpl struct {
	db     *gorm.DB
	mapper *mapper.SessionMapper
}

func NewSessionStore(db *gorm.DB) contract.SessionStore {
	return &SessionStoreImpl{
		db:     db,
		mapper: mapper.NewSessionMapper(),
	}
}

func (r *SessionStoreImpl) Save(ctx context.Context, session *entity.PracticeSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *SessionStoreImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.PracticeSession, error) {
	var m model.PracticeSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SessionStoreImpl) FindByStudent(ctx context.Context, studentId string) ([]*entity.PracticeSession, error) {
	var models []*model.PracticeSession
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentId).
		Order("updated_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SessionStoreImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PracticeSession{}, id).Error
}

func (r *SessionStoreImpl) SetCurrent(ctx context.Context, studentId string, sessionId uuid.UUID) error {
	row := model.CurrentSession{StudentId: studentId, SessionId: sessionId}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"session_id", "updated_at"}),
	}).Create(&row).Error
}

func (r *SessionStoreImpl) GetCurrent(ctx context.Context, studentId string) (uuid.UUID, bool, error) {
	var row model.CurrentSession
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentId).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return row.SessionId, true, nil
}

func (r *SessionStoreImpl) ClearCurrent(ctx context.Context, studentId string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", studentId).
		Delete(&model.CurrentSession{}).Error
}
