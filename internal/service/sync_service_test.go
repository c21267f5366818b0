package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-service/internal/config"
	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/enrollment"
	"github.com/spec-kit/internship-service/internal/events"
	"github.com/spec-kit/internship-service/internal/observability"
	"github.com/spec-kit/internship-service/internal/roster"
)

var rosterHeader = []string{
	"Timestamp", "Full Name", "Email Address", "Phone Number", "Gender",
	"Country", "Domain", "Address", "College", "Degree", "Year", "LinkedIn",
}

func rosterRow(timestamp, name, emailAddr, domainLabel string) []string {
	return []string{timestamp, name, emailAddr, "12345", "F", "India",
		domainLabel, "", "Some College", "B.Tech", "2026", ""}
}

func newSyncEngine(repo *fakeInternRepo, src roster.Source, dispatcher events.Dispatcher) *SyncService {
	return NewSyncService(SyncDependencies{
		InternRepo: repo,
		Source:     src,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
		Metrics:    observability.NewMetrics(),
		Cfg:        config.SyncConfig{BatchSize: 5, BatchTimeoutSecs: 5},
	})
}

func TestSyncRunWithoutSourceIsNoOp(t *testing.T) {
	t.Parallel()

	engine := newSyncEngine(newFakeInternRepo(), nil, nil)
	result, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &SyncResult{}, result)
}

func TestSyncCreatesNewInterns(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	src := &fakeSource{
		header: rosterHeader,
		rows: [][]string{
			rosterRow("15/01/2025 10:00:00", "Asha Rao", "asha@example.com", "MERN Stack"),
			rosterRow("16/01/2025 09:30:00", "Binod Karki", "binod@example.com", "Data Science"),
		},
	}

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	enrolled := 0
	dispatcher.Subscribe(events.EventInternEnrolled, func(_ context.Context, event events.Event) error {
		payload := event.Payload.(events.InternEnrolledPayload)
		assert.Equal(t, "roster", payload.Source)
		enrolled++
		return nil
	})

	engine := newSyncEngine(repo, src, dispatcher)
	result, err := engine.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 2, enrolled)

	intern, err := repo.GetByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.True(t, enrollment.IsValidInternID(intern.InternID))
	// applied on the 15th, so the phase 3 cohort starting on the 21st
	assert.Equal(t, 3, intern.Phase)
	assert.Equal(t, time.Date(2025, time.January, 21, 0, 0, 0, 0, time.UTC), intern.StartDate)
	assert.Equal(t, intern.StartDate.AddDate(0, 0, 28), intern.EndDate)
	assert.Equal(t, domain.InternStatusPending, intern.Status)
	require.NotNil(t, intern.SheetRow)
	assert.Equal(t, 2, *intern.SheetRow)

	highest, err := repo.HighestSheetRow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, highest)
}

func TestSyncRefreshesNewestIngestedRow(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	src := &fakeSource{
		header: rosterHeader,
		rows: [][]string{
			rosterRow("05/01/2025 08:00:00", "Chitra Iyer", "chitra@example.com", "MERN Stack"),
		},
	}
	engine := newSyncEngine(repo, src, nil)

	_, err := engine.Run(context.Background())
	require.NoError(t, err)
	before, err := repo.GetByEmail(context.Background(), "chitra@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, before.Phase)

	// the operator corrects the submission timestamp in place
	src.rows[0] = rosterRow("25/01/2025 08:00:00", "Chitra Iyer-Menon", "chitra@example.com", "MERN Stack")
	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)

	after, err := repo.GetByEmail(context.Background(), "chitra@example.com")
	require.NoError(t, err)
	assert.Equal(t, before.InternID, after.InternID)
	assert.Equal(t, "Chitra Iyer-Menon", after.Name)
	assert.Equal(t, 1, after.Phase)
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), after.StartDate)
}

func TestSyncSkipsDuplicateEmailOnDifferentRow(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	src := &fakeSource{
		header: rosterHeader,
		rows: [][]string{
			rosterRow("05/01/2025 08:00:00", "Deep Singh", "deep@example.com", "AI/ML"),
			rosterRow("06/01/2025 08:00:00", "Deep Singh", "deep@example.com", "AI/ML"),
		},
	}
	engine := newSyncEngine(repo, src, nil)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, result.Skipped)

	intern, err := repo.GetByEmail(context.Background(), "deep@example.com")
	require.NoError(t, err)
	require.NotNil(t, intern.SheetRow)
	assert.Equal(t, 2, *intern.SheetRow)
}

func TestSyncSkipsRowsMissingMandatoryFields(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	src := &fakeSource{
		header: rosterHeader,
		rows: [][]string{
			rosterRow("05/01/2025 08:00:00", "No Email", "", "MERN Stack"),
			rosterRow("", "No Timestamp", "no-ts@example.com", "MERN Stack"),
			rosterRow("05/01/2025 08:00:00", "No Domain", "no-domain@example.com", ""),
			rosterRow("not a date", "Bad Timestamp", "bad-ts@example.com", "MERN Stack"),
			rosterRow("05/01/2025 08:00:00", "Valid Row", "valid@example.com", "MERN Stack"),
		},
	}
	engine := newSyncEngine(repo, src, nil)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 4, result.Skipped)
}

func TestSyncBatchFailureRollsBackWholeBatch(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	repo.failFor["fails@example.com"] = errors.New("constraint violation")
	src := &fakeSource{
		header: rosterHeader,
		rows: [][]string{
			rosterRow("05/01/2025 08:00:00", "First", "first@example.com", "MERN Stack"),
			rosterRow("05/01/2025 08:05:00", "Fails", "fails@example.com", "MERN Stack"),
			rosterRow("05/01/2025 08:10:00", "Third", "third@example.com", "MERN Stack"),
		},
	}
	engine := NewSyncService(SyncDependencies{
		InternRepo: repo,
		Source:     src,
		Logger:     zap.NewNop(),
		Metrics:    observability.NewMetrics(),
		Cfg:        config.SyncConfig{BatchSize: 2, BatchTimeoutSecs: 5},
	})

	result, err := engine.Run(context.Background())
	require.NoError(t, err)
	// rows 2 and 3 share the failed batch; row 4 lands in the next one
	assert.Equal(t, 2, result.Errors)
	assert.Equal(t, 1, result.Synced)

	_, err = repo.GetByEmail(context.Background(), "first@example.com")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = repo.GetByEmail(context.Background(), "third@example.com")
	assert.NoError(t, err)
}

func TestSyncRejectsOverlappingPasses(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	src := &fakeSource{
		header: rosterHeader,
		onFirstSheet: func() {
			close(entered)
			<-release
		},
	}
	engine := newSyncEngine(newFakeInternRepo(), src, nil)

	done := make(chan error, 1)
	go func() {
		_, err := engine.Run(context.Background())
		done <- err
	}()

	<-entered
	_, err := engine.Run(context.Background())
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	require.NoError(t, <-done)
}
