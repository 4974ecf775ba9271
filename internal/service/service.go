// Package service orchestrates alert construction and delivery for notify
// requests.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/telhawk-systems/hivebridge/internal/hive"
	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/repository"
	"github.com/telhawk-systems/hivebridge/internal/rules"
	"github.com/telhawk-systems/hivebridge/internal/suppression"
)

var (
	// ErrRuleNotFound is returned when a notify request names an unknown rule.
	ErrRuleNotFound = errors.New("rule not found")
	// ErrSuppressed is returned when a rule is inside its realert window.
	ErrSuppressed = errors.New("alert suppressed by realert window")
)

// Deliverer is the outbound boundary of the service.
type Deliverer interface {
	Deliver(ctx context.Context, payload models.Payload) error
	Describe() map[string]string
}

// Service handles notify requests: suppression check, payload assembly,
// delivery, journaling and silencing. Each invocation is a single
// synchronous call path; the only shared state is the read-only rule store,
// so concurrent invocations are independent.
type Service struct {
	store      *rules.Store
	assembler  *hive.Assembler
	clients    map[string]Deliverer
	repo       repository.Repository
	suppressor *suppression.Suppressor
	logger     *slog.Logger
}

// NewService wires a service. Each rule gets a delivery client built from
// its own connection settings, falling back to defaultConn.
func NewService(store *rules.Store, repo repository.Repository, suppressor *suppression.Suppressor, defaultConn rules.ConnectionConfig, logger *slog.Logger) *Service {
	clients := map[string]Deliverer{}
	for _, rule := range store.All() {
		conn := defaultConn
		if rule.Connection != nil {
			conn = *rule.Connection
		}
		clients[rule.Name] = hive.NewClient(conn)
	}
	return NewServiceWithClients(store, clients, repo, suppressor, logger)
}

// NewServiceWithClients wires a service with pre-built delivery clients,
// keyed by rule name.
func NewServiceWithClients(store *rules.Store, clients map[string]Deliverer, repo repository.Repository, suppressor *suppression.Suppressor, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		assembler:  hive.NewAssembler(),
		clients:    clients,
		repo:       repo,
		suppressor: suppressor,
		logger:     logger,
	}
}

// Notify builds and delivers one alert for the named rule and match batch.
// Delivery is not retried; a transport or HTTP failure is journaled and
// surfaces as a single *hive.DeliveryError. A successful delivery opens the
// rule's realert silence window when one is configured.
func (s *Service) Notify(ctx context.Context, ruleName string, matches []models.Match) (*models.NotifyResponse, error) {
	rule, ok := s.store.Get(ruleName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, ruleName)
	}

	silenced, err := s.suppressor.IsSilenced(ctx, rule.Name)
	if err != nil {
		// Suppression state is advisory; a cache failure must not block
		// alerting.
		s.logger.WarnContext(ctx, "silence check failed", "rule", rule.Name, "error", err)
	}
	if silenced {
		return nil, fmt.Errorf("%w: %s", ErrSuppressed, rule.Name)
	}

	payload := s.assembler.Assemble(rule, matches)
	artifactCount := len(payload.Artifacts())
	tagCount := len(payload.Tags())

	if err := s.clients[rule.Name].Deliver(ctx, payload); err != nil {
		s.logger.ErrorContext(ctx, "alert delivery failed", "rule", rule.Name, "source_ref", payload.SourceRef(), "error", err)
		s.journal(ctx, rule.Name, payload.SourceRef(), models.DeliveryStatusFailed, err.Error(), artifactCount, tagCount)
		return nil, err
	}

	s.logger.InfoContext(ctx, "alert sent to case management",
		"rule", rule.Name, "source_ref", payload.SourceRef(),
		"artifacts", artifactCount, "tags", tagCount)
	s.journal(ctx, rule.Name, payload.SourceRef(), models.DeliveryStatusSent, "", artifactCount, tagCount)

	if rule.Realert > 0 {
		if err := s.suppressor.Silence(ctx, rule.Name, payload.SourceRef(), rule.Realert); err != nil {
			s.logger.WarnContext(ctx, "failed to open silence window", "rule", rule.Name, "error", err)
		}
	}

	return &models.NotifyResponse{
		RuleName:      rule.Name,
		SourceRef:     payload.SourceRef(),
		ArtifactCount: artifactCount,
		TagCount:      tagCount,
	}, nil
}

// ListDeliveries retrieves a paginated page of the delivery journal.
func (s *Service) ListDeliveries(ctx context.Context, req *models.ListDeliveriesRequest) (*models.ListDeliveriesResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 50
	}

	deliveries, total, err := s.repo.ListDeliveries(ctx, req)
	if err != nil {
		return nil, err
	}

	totalPages := (total + req.Limit - 1) / req.Limit

	return &models.ListDeliveriesResponse{
		Deliveries: deliveries,
		Pagination: models.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// DescribeNotifiers returns the diagnostic description of every configured
// notifier, sorted by rule name. No side effects.
func (s *Service) DescribeNotifiers() []map[string]string {
	described := make([]map[string]string, 0, len(s.clients))
	for _, rule := range s.store.All() {
		described = append(described, s.clients[rule.Name].Describe())
	}
	return described
}

// journal records a delivery attempt. Journal failures are logged, never
// propagated: the delivery outcome already happened and must stand.
func (s *Service) journal(ctx context.Context, ruleName, sourceRef, status, errText string, artifacts, tags int) {
	id, err := uuid.NewV7()
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate journal id", "error", err)
		return
	}

	rec := &models.DeliveryRecord{
		ID:            id.String(),
		RuleName:      ruleName,
		SourceRef:     sourceRef,
		Status:        status,
		Error:         errText,
		ArtifactCount: artifacts,
		TagCount:      tags,
		DeliveredAt:   time.Now(),
	}
	if err := s.repo.RecordDelivery(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "failed to journal delivery", "rule", ruleName, "error", err)
	}
}
