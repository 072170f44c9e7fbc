// Package recruitment is the application lifecycle engine: capacity gate, status machine,
// skill-test gate, evaluation decisions and candidate notifications.
package recruitment

import (
	"context"
	"time"

	"recruitment-workers/internal/common/logger"
	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"

	"github.com/google/uuid"
)

type Config struct {
	DefaultTestDuration   int
	DefaultTestTotalScore int
	InterviewTimeLayouts  []string
	SearchResultLimit     int
}

// Service runs every lifecycle operation. Mutations happen inside one store transaction;
// cache and search index updates happen after commit.
type Service struct {
	store    repository.Store
	cache    repository.SkillTestCache
	index    repository.JobIndex
	gate     *CapacityGate
	notifier *Notifier
	config   Config
	logger   logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires the engine. cache and index may be nil.
func NewService(store repository.Store, cache repository.SkillTestCache, index repository.JobIndex, config Config, log logger.Logger) *Service {
	if config.DefaultTestDuration <= 0 {
		config.DefaultTestDuration = 30
	}
	if config.DefaultTestTotalScore <= 0 {
		config.DefaultTestTotalScore = 100
	}
	if config.SearchResultLimit <= 0 {
		config.SearchResultLimit = 20
	}
	if len(config.InterviewTimeLayouts) == 0 {
		config.InterviewTimeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", "2006-01-02 15:04", time.RFC3339}
	}

	s := &Service{
		store:  store,
		cache:  cache,
		index:  index,
		config: config,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	s.gate = &CapacityGate{now: s.now}
	s.notifier = &Notifier{newID: s.newID, now: s.now}
	return s
}

// audit writes a lifecycle event outside the committed transaction. Failures are logged only.
func (s *Service) audit(ctx context.Context, eventType, resourceType, resourceID string, details map[string]interface{}) {
	entry := &models.AuditLog{
		ID:           s.newID(),
		EventType:    eventType,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		CreatedAt:    s.now(),
	}
	if err := s.store.InsertAuditLog(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit log", map[string]interface{}{
			"eventType":  eventType,
			"resourceId": resourceID,
			"error":      err.Error(),
		})
	}
}

func (s *Service) markJobClosed(ctx context.Context, jobID string) error {
	if s.index == nil {
		return nil
	}
	return s.index.MarkClosed(ctx, jobID)
}

func (s *Service) indexJob(ctx context.Context, job *models.Job, hasSkillTest bool) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, job.ToDocument(hasSkillTest)); err != nil {
		s.logger.Warn("Failed to index job", map[string]interface{}{
			"jobId": job.ID,
			"error": err.Error(),
		})
	}
}
