package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-service/internal/config"
	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/enrollment"
	"github.com/spec-kit/internship-service/internal/events"
	"github.com/spec-kit/internship-service/internal/observability"
	"github.com/spec-kit/internship-service/internal/repository"
	"github.com/spec-kit/internship-service/internal/roster"
)

// ErrSyncInProgress signals that a pass is already running; callers retry on
// the next tick.
var ErrSyncInProgress = errors.New("roster sync already in progress")

// SyncResult aggregates the outcome of one reconciliation pass.
type SyncResult struct {
	Synced  int
	Skipped int
	Errors  int
}

// SyncService reconciles the external applicant roster into local storage.
// One pass runs at a time; overlapping triggers are rejected.
type SyncService struct {
	interns      repository.InternRepository
	source       roster.Source
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	metrics      *observability.Metrics
	batchSize    int
	batchTimeout time.Duration

	mu sync.Mutex
}

// SyncDependencies bundles requirements for the sync engine.
type SyncDependencies struct {
	InternRepo repository.InternRepository
	// Source may be nil when no roster is configured; every pass is then a
	// zero-result no-op.
	Source     roster.Source
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Cfg        config.SyncConfig
}

// NewSyncService constructs the engine.
func NewSyncService(deps SyncDependencies) *SyncService {
	batchSize := deps.Cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 5
	}
	return &SyncService{
		interns:      deps.InternRepo,
		source:       deps.Source,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		batchSize:    batchSize,
		batchTimeout: deps.Cfg.BatchTimeout(),
	}
}

// rowOutcome classifies what applying one roster row did.
type rowOutcome int

const (
	outcomeSynced rowOutcome = iota
	outcomeSkipped
)

// Run executes a single reconciliation pass. New rows are fetched from the
// stored watermark onwards; the newest previously ingested row is re-read so
// operator edits to it are picked up.
func (s *SyncService) Run(ctx context.Context) (*SyncResult, error) {
	if !s.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	result := &SyncResult{}
	if s.source == nil {
		s.logger.Debug("roster source not configured; skipping sync pass")
		return result, nil
	}

	sheet, err := s.source.FirstSheetName(ctx)
	if err != nil {
		return nil, err
	}
	header, err := s.source.Header(ctx, sheet)
	if err != nil {
		return nil, err
	}
	if len(header) == 0 {
		s.logger.Warn("roster sheet has no header row; skipping sync pass",
			zap.String("sheet", sheet))
		return result, nil
	}
	colMap := roster.MapColumns(header)

	fromRow, err := s.interns.HighestSheetRow(ctx)
	if err != nil {
		return nil, err
	}
	if fromRow < roster.FirstDataRow {
		fromRow = roster.FirstDataRow
	}

	raw, err := s.source.Rows(ctx, sheet, fromRow)
	if err != nil {
		return nil, err
	}

	parsed := make([]*roster.Row, 0, len(raw))
	for i, cells := range raw {
		sheetRow := fromRow + i
		row, err := colMap.Parse(cells, sheetRow)
		if err != nil {
			result.Skipped++
			s.logger.Debug("skipping roster row",
				zap.Int("sheet_row", sheetRow),
				zap.Error(err))
			continue
		}
		parsed = append(parsed, row)
	}

	for start := 0; start < len(parsed); start += s.batchSize {
		end := start + s.batchSize
		if end > len(parsed) {
			end = len(parsed)
		}
		batch := parsed[start:end]

		var enrolled []*domain.Intern
		batchResult := SyncResult{}
		err := s.interns.InTx(ctx, s.batchTimeout, func(txCtx context.Context, repo repository.InternRepository) error {
			for _, row := range batch {
				outcome, intern, err := s.applyRow(txCtx, repo, row)
				if err != nil {
					return err
				}
				switch outcome {
				case outcomeSynced:
					batchResult.Synced++
				case outcomeSkipped:
					batchResult.Skipped++
				}
				if intern != nil {
					enrolled = append(enrolled, intern)
				}
			}
			return nil
		})
		if err != nil {
			// the whole batch rolled back; count every row as failed
			result.Errors += len(batch)
			s.logger.Error("roster batch failed",
				zap.Int("from_row", batch[0].SheetRow),
				zap.Int("rows", len(batch)),
				zap.Error(err))
			continue
		}
		result.Synced += batchResult.Synced
		result.Skipped += batchResult.Skipped
		for _, intern := range enrolled {
			s.publishEnrolled(ctx, intern)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordSyncPass(result.Synced, result.Skipped, result.Errors)
	}
	s.publishCompleted(ctx, result)
	s.logger.Info("roster sync pass finished",
		zap.Int("synced", result.Synced),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors))
	return result, nil
}

// applyRow reconciles one roster row. It returns the newly enrolled intern
// when a record was created, so the caller can publish events after commit.
func (s *SyncService) applyRow(ctx context.Context, repo repository.InternRepository, row *roster.Row) (rowOutcome, *domain.Intern, error) {
	emailAddr := strings.ToLower(row.Email)
	existing, err := repo.GetByEmail(ctx, emailAddr)
	if err == pgx.ErrNoRows {
		intern := internFromRow(row, emailAddr)
		if err := repo.Create(ctx, intern); err != nil {
			return 0, nil, err
		}
		return outcomeSynced, intern, nil
	}
	if err != nil {
		return 0, nil, err
	}

	if existing.SheetRow == nil || *existing.SheetRow != row.SheetRow {
		// same email on a different roster row is a duplicate submission
		s.logger.Debug("duplicate roster email",
			zap.String("email", emailAddr),
			zap.Int("sheet_row", row.SheetRow))
		return outcomeSkipped, nil, nil
	}

	refreshFromRow(existing, row)
	if err := repo.Update(ctx, existing); err != nil {
		return 0, nil, err
	}
	return outcomeSynced, nil, nil
}

// internFromRow builds a new intern record from a roster row. The cohort is
// derived from the row's submission timestamp, not the sync time.
func internFromRow(row *roster.Row, emailAddr string) *domain.Intern {
	cohort := enrollment.Compute(row.AppliedAt)
	sheetRow := row.SheetRow
	return &domain.Intern{
		InternID:    enrollment.NewInternID(row.Domain, cohort.Phase),
		Name:        strings.TrimSpace(row.Name),
		Email:       emailAddr,
		Phone:       strings.TrimSpace(row.Phone),
		Gender:      optString(row.Gender),
		Country:     optString(row.Country),
		Domain:      row.Domain,
		Address:     optString(row.Address),
		College:     optString(row.College),
		Degree:      optString(row.Degree),
		YearOfStudy: optString(row.Year),
		SocialMedia: optString(row.SocialMedia),
		AppliedAt:   row.AppliedAt,
		Phase:       cohort.Phase,
		StartDate:   cohort.Start,
		EndDate:     cohort.End,
		Status:      domain.InternStatusPending,
		SheetRow:    &sheetRow,
	}
}

// refreshFromRow re-applies roster fields to an existing record from the same
// sheet row. The identifier never changes; phase and dates follow the row's
// current timestamp.
func refreshFromRow(intern *domain.Intern, row *roster.Row) {
	cohort := enrollment.Compute(row.AppliedAt)
	intern.Name = strings.TrimSpace(row.Name)
	intern.Phone = strings.TrimSpace(row.Phone)
	intern.Gender = optString(row.Gender)
	intern.Country = optString(row.Country)
	intern.Domain = row.Domain
	intern.Address = optString(row.Address)
	intern.College = optString(row.College)
	intern.Degree = optString(row.Degree)
	intern.YearOfStudy = optString(row.Year)
	intern.SocialMedia = optString(row.SocialMedia)
	intern.AppliedAt = row.AppliedAt
	intern.Phase = cohort.Phase
	intern.StartDate = cohort.Start
	intern.EndDate = cohort.End
}

func (s *SyncService) publishEnrolled(ctx context.Context, intern *domain.Intern) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventInternEnrolled,
		Timestamp: time.Now(),
		Payload: events.InternEnrolledPayload{
			InternID: intern.InternID,
			Email:    intern.Email,
			Domain:   intern.Domain,
			Phase:    intern.Phase,
			Source:   "roster",
		},
	})
}

func (s *SyncService) publishCompleted(ctx context.Context, result *SyncResult) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRosterSyncCompleted,
		Timestamp: time.Now(),
		Payload: events.RosterSyncCompletedPayload{
			Synced:  result.Synced,
			Skipped: result.Skipped,
			Errors:  result.Errors,
		},
	})
}

func optString(val string) *string {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil
	}
	return &val
}
