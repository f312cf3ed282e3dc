package visitlog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/yanqian/leetlens/pkg/errors"
	"github.com/yanqian/leetlens/pkg/util"
)

// Repository persists visit entries. Update methods report false when no
// entry has the id.
type Repository interface {
	CreateVisit(ctx context.Context, userID string, at time.Time) (Entry, error)
	UpdateVisitProfile(ctx context.Context, id, realName string, totalSolved int) (Entry, bool, error)
	MarkVisitScrolled(ctx context.Context, id string, fullyScrolled bool) (Entry, bool, error)
}

// Service exposes the visit-log operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Entry, error)
	UpdateProfile(ctx context.Context, req UpdateRequest) (Entry, error)
	MarkScrolled(ctx context.Context, req ScrollRequest) (Entry, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the visit-log domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "visitlog.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Entry, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return Entry{}, apperrors.Wrap(CodeInvalidInput, "user_id is required", nil)
	}
	entry, err := s.repo.CreateVisit(ctx, userID, s.now())
	if err != nil {
		s.logger.Error("failed to insert visit", "user_id", userID, "error", err)
		return Entry{}, apperrors.Wrap("visit_log_failed", "failed to insert log", err)
	}
	return entry, nil
}

func (s *service) UpdateProfile(ctx context.Context, req UpdateRequest) (Entry, error) {
	id := strings.TrimSpace(req.ID)
	realName := strings.TrimSpace(req.RealName)
	if id == "" || realName == "" || req.TotalSolved == nil {
		return Entry{}, apperrors.Wrap(CodeInvalidInput, "missing values", nil)
	}
	if *req.TotalSolved < 0 {
		return Entry{}, apperrors.Wrap(CodeInvalidInput, "Total_Solved must not be negative", nil)
	}
	entry, found, err := s.repo.UpdateVisitProfile(ctx, id, realName, *req.TotalSolved)
	if err != nil {
		s.logger.Error("failed to update visit", "id", id, "error", err)
		return Entry{}, apperrors.Wrap("visit_log_failed", "failed to update log", err)
	}
	if !found {
		return Entry{}, apperrors.Wrap(CodeNotFound, "log not found", nil)
	}
	return entry, nil
}

func (s *service) MarkScrolled(ctx context.Context, req ScrollRequest) (Entry, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return Entry{}, apperrors.Wrap(CodeInvalidInput, "missing log ID", nil)
	}
	entry, found, err := s.repo.MarkVisitScrolled(ctx, id, req.FullyScrolled)
	if err != nil {
		s.logger.Error("failed to update scroll status", "id", id, "error", err)
		return Entry{}, apperrors.Wrap("visit_log_failed", "failed to update scroll status", err)
	}
	if !found {
		return Entry{}, apperrors.Wrap(CodeNotFound, "log not found", nil)
	}
	return entry, nil
}
