package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"mathclicks-be/internal/dto"
	"mathclicks-be/internal/entity"
	"mathclicks-be/internal/pkg/logger"
	"mathclicks-be/internal/pkg/mailer"
	"mathclicks-be/internal/repository/specification"
	"mathclicks-be/internal/repository/unitofwork"
	"mathclicks-be/pkg/events"
	natspkg "mathclicks-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ClassBroadcaster pushes a payload to every monitor socket watching a class.
// Implemented by the websocket hub.
type ClassBroadcaster interface {
	BroadcastToClass(classCode string, payload interface{})
}

type IClassService interface {
	Create(ctx context.Context, req dto.CreateClassRequest) (*dto.CreateClassResponse, error)
	Update(ctx context.Context, req dto.UpdateClassRequest) error
	RecordAchievement(ctx context.Context, req dto.ClassAchievementRequest) error
	IssueTeacherToken(ctx context.Context, req dto.TeacherTokenRequest) (*dto.TeacherTokenResponse, error)
	Progress(ctx context.Context, classCode string) (*dto.ClassProgressResponse, error)
}

// codeAlphabet omits 0/O, 1/I/L to keep codes readable off a whiteboard.
const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const classCodeLength = 6

const teacherTokenTTL = 12 * time.Hour

type classService struct {
	repoFactory unitofwork.RepositoryFactory
	mailer      mailer.IEmailService
	publisher   *natspkg.Publisher
	broadcaster ClassBroadcaster
	jwtSecret   string
	logger      logger.ILogger
}

func NewClassService(
	repoFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	publisher *natspkg.Publisher,
	broadcaster ClassBroadcaster,
	jwtSecret string,
	log logger.ILogger,
) IClassService {
	return &classService{
		repoFactory: repoFactory,
		mailer:      emailService,
		publisher:   publisher,
		broadcaster: broadcaster,
		jwtSecret:   jwtSecret,
		logger:      log,
	}
}

// Create registers a class, hashes its PIN, and returns the join code. The
// code email is best effort and never fails the request.
func (s *classService) Create(ctx context.Context, req dto.CreateClassRequest) (*dto.CreateClassResponse, error) {
	uow := s.repoFactory.NewUnitOfWork(ctx)

	code, err := s.uniqueCode(ctx, uow)
	if err != nil {
		return nil, err
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	class := &entity.Class{
		Id:           uuid.New(),
		Code:         code,
		Name:         req.ClassName,
		TeacherName:  req.TeacherName,
		TeacherEmail: req.TeacherEmail,
		PinHash:      string(pinHash),
		CreatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ClassRepository().Create(ctx, class); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ClassService", "Class created", map[string]interface{}{
		"class_id":   class.Id,
		"class_code": class.Code,
	})

	if s.mailer != nil && req.TeacherEmail != "" {
		go func() {
			if err := s.mailer.SendClassCode(req.TeacherEmail, req.TeacherName, req.ClassName, code); err != nil {
				s.logger.Warn("ClassService", "Class code email not sent", map[string]interface{}{
					"class_code": code,
					"error":      err.Error(),
				})
			}
		}()
	}

	return &dto.CreateClassResponse{ClassCode: code}, nil
}

// Update upserts a sharing student's snapshot into the class roster and fans
// the update out to watching monitors.
func (s *classService) Update(ctx context.Context, req dto.UpdateClassRequest) error {
	uow := s.repoFactory.NewUnitOfWork(ctx)

	class, err := s.classByCode(ctx, uow, req.ClassCode)
	if err != nil {
		return err
	}

	now := time.Now()
	member := &entity.ClassMember{
		Id:          uuid.New(),
		ClassId:     class.Id,
		StudentId:   req.StudentId,
		StudentName: req.StudentName,
		Snapshot:    req.Snapshot,
		CreatedAt:   now,
		UpdatedAt:   &now,
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ClassMemberRepository().Upsert(ctx, member); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.fanOut(ctx, class.Code, events.TypeProgressUpdated, map[string]interface{}{
		"class_code":   class.Code,
		"student_id":   req.StudentId,
		"student_name": req.StudentName,
		"snapshot":     req.Snapshot,
	})

	return nil
}

// RecordAchievement stores an earned badge and announces it to the class.
func (s *classService) RecordAchievement(ctx context.Context, req dto.ClassAchievementRequest) error {
	uow := s.repoFactory.NewUnitOfWork(ctx)

	class, err := s.classByCode(ctx, uow, req.ClassCode)
	if err != nil {
		return err
	}

	achievement := &entity.Achievement{
		Id:        uuid.New(),
		ClassId:   class.Id,
		StudentId: req.StudentId,
		Code:      req.Code,
		Label:     req.Label,
		EarnedAt:  time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.AchievementRepository().Create(ctx, achievement); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.fanOut(ctx, class.Code, events.TypeAchievementEarned, map[string]interface{}{
		"class_code": class.Code,
		"student_id": req.StudentId,
		"code":       req.Code,
		"label":      req.Label,
	})

	return nil
}

// IssueTeacherToken checks the class PIN and mints a short-lived monitor token
// carrying the class code.
func (s *classService) IssueTeacherToken(ctx context.Context, req dto.TeacherTokenRequest) (*dto.TeacherTokenResponse, error) {
	uow := s.repoFactory.NewUnitOfWork(ctx)

	class, err := s.classByCode(ctx, uow, req.ClassCode)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(class.PinHash), []byte(req.Pin)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "incorrect PIN")
	}

	claims := jwt.MapClaims{
		"class_code": class.Code,
		"exp":        time.Now().Add(teacherTokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.TeacherTokenResponse{Token: token}, nil
}

// Progress returns the full monitor view for a class.
func (s *classService) Progress(ctx context.Context, classCode string) (*dto.ClassProgressResponse, error) {
	uow := s.repoFactory.NewUnitOfWork(ctx)

	class, err := s.classByCode(ctx, uow, classCode)
	if err != nil {
		return nil, err
	}

	members, err := uow.ClassMemberRepository().FindAll(ctx, specification.ByClassId{ClassId: class.Id})
	if err != nil {
		return nil, err
	}
	achievements, err := uow.AchievementRepository().FindAll(ctx, specification.ByClassId{ClassId: class.Id})
	if err != nil {
		return nil, err
	}

	resp := &dto.ClassProgressResponse{
		ClassName:    class.Name,
		Members:      make([]dto.MemberProgress, 0, len(members)),
		Achievements: make([]dto.EarnedAchievement, 0, len(achievements)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, dto.MemberProgress{
			StudentId:   m.StudentId,
			StudentName: m.StudentName,
			Snapshot:    m.Snapshot,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	for _, a := range achievements {
		resp.Achievements = append(resp.Achievements, dto.EarnedAchievement{
			StudentId: a.StudentId,
			Code:      a.Code,
			Label:     a.Label,
			EarnedAt:  a.EarnedAt,
		})
	}

	return resp, nil
}

func (s *classService) classByCode(ctx context.Context, uow unitofwork.UnitOfWork, code string) (*entity.Class, error) {
	class, err := uow.ClassRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "class not found")
	}
	return class, nil
}

func (s *classService) uniqueCode(ctx context.Context, uow unitofwork.UnitOfWork) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := randomCode(classCodeLength)
		if err != nil {
			return "", err
		}
		count, err := uow.ClassRepository().Count(ctx, specification.ByCode{Code: code})
		if err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", fiber.NewError(fiber.StatusInternalServerError, "could not allocate a class code")
}

func randomCode(length int) (string, error) {
	out := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// fanOut announces a classroom event to watching monitors. With NATS up, the
// event rides the stream and reaches every instance's hub through the durable
// consumer; without it, only local monitors hear about it.
func (s *classService) fanOut(ctx context.Context, classCode, eventType string, payload map[string]interface{}) {
	if s.publisher != nil {
		event := events.BaseEvent{
			Type:       eventType,
			Data:       payload,
			OccurredAt: time.Now(),
		}
		err := s.publisher.Publish(ctx, event)
		if err == nil {
			return
		}
		s.logger.Warn("ClassService", "Classroom event not published, falling back to local broadcast", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToClass(classCode, map[string]interface{}{
			"type":    eventType,
			"payload": payload,
		})
	}
}
