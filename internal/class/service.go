package class

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type CreateRequest struct {
	Name            string
	Category        string
	Instructor      string
	StartTime       time.Time
	DurationMinutes int
	TotalSlots      int
}

type UpdateRequest struct {
	Name            *string
	Category        *string
	Instructor      *string
	StartTime       *time.Time
	DurationMinutes *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Session, error)
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context, filter Filter) ([]*Session, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Session, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if !Category(req.Category).Valid() {
		return nil, ErrInvalidCategory
	}
	if req.TotalSlots <= 0 {
		return nil, ErrInvalidSlots
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if !req.StartTime.After(time.Now().UTC()) {
		return nil, ErrStartTimeNotFuture
	}

	session := &Session{
		Name:            strings.TrimSpace(req.Name),
		Category:        Category(req.Category),
		Instructor:      req.Instructor,
		StartTime:       req.StartTime.UTC(),
		DurationMinutes: req.DurationMinutes,
		TotalSlots:      req.TotalSlots,
		// A new session starts fully open.
		AvailableSlots: req.TotalSlots,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	zap.L().Info("class created",
		zap.String("class_id", session.ID),
		zap.String("name", session.Name),
		zap.Int("total_slots", session.TotalSlots),
	)

	return session, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Session, int, error) {
	return s.repo.List(ctx, filter)
}

// Update applies an operator edit to a class definition. It is a plain
// unlocked write outside the booking protocol; capacity fields are not
// editable here.
func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		session.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if !Category(*req.Category).Valid() {
			return nil, ErrInvalidCategory
		}
		session.Category = Category(*req.Category)
	}
	if req.Instructor != nil {
		session.Instructor = *req.Instructor
	}
	if req.StartTime != nil {
		if !req.StartTime.After(time.Now().UTC()) {
			return nil, ErrStartTimeNotFuture
		}
		session.StartTime = req.StartTime.UTC()
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		session.DurationMinutes = *req.DurationMinutes
	}

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	zap.L().Info("class deleted", zap.String("class_id", id))
	return nil
}
