package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/email"
	"github.com/spec-kit/internship-service/internal/repository"
)

// fakeInternRepo is an in-memory InternRepository. InTx snapshots state and
// restores it when fn fails, mirroring a rolled-back transaction.
type fakeInternRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.Intern
	nextID  int
	failFor map[string]error // email -> error to return from Create
}

func newFakeInternRepo() *fakeInternRepo {
	return &fakeInternRepo{
		byID:    make(map[string]*domain.Intern),
		failFor: make(map[string]error),
	}
}

func (f *fakeInternRepo) Create(_ context.Context, intern *domain.Intern) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[intern.Email]; ok {
		return err
	}
	f.nextID++
	intern.ID = fmt.Sprintf("id-%d", f.nextID)
	intern.CreatedAt = time.Now()
	intern.UpdatedAt = intern.CreatedAt
	clone := *intern
	f.byID[intern.ID] = &clone
	return nil
}

func (f *fakeInternRepo) Update(_ context.Context, intern *domain.Intern) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[intern.ID]; !ok {
		return pgx.ErrNoRows
	}
	intern.UpdatedAt = time.Now()
	clone := *intern
	f.byID[intern.ID] = &clone
	return nil
}

func (f *fakeInternRepo) GetByID(_ context.Context, id string) (*domain.Intern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	intern, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *intern
	return &clone, nil
}

func (f *fakeInternRepo) GetByInternID(_ context.Context, internID string) (*domain.Intern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, intern := range f.byID {
		if intern.InternID == internID {
			clone := *intern
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInternRepo) GetByEmail(_ context.Context, emailAddr string) (*domain.Intern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, intern := range f.byID {
		if intern.Email == emailAddr {
			clone := *intern
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInternRepo) ListWithFilter(_ context.Context, filter repository.InternFilter) ([]domain.Intern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Intern
	for _, intern := range f.byID {
		if filter.Status != nil && intern.Status != *filter.Status {
			continue
		}
		if filter.Domain != nil && intern.Domain != *filter.Domain {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(intern.Name), term) &&
				!strings.Contains(strings.ToLower(intern.Email), term) &&
				!strings.Contains(strings.ToLower(intern.InternID), term) {
				continue
			}
		}
		out = append(out, *intern)
	}
	return out, nil
}

func (f *fakeInternRepo) Stats(_ context.Context) (*domain.InternStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &domain.InternStats{}
	for _, intern := range f.byID {
		stats.Total++
		switch intern.Status {
		case domain.InternStatusPending:
			stats.Pending++
		case domain.InternStatusActive:
			stats.Active++
		case domain.InternStatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func (f *fakeInternRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeInternRepo) HighestSheetRow(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	highest := 0
	for _, intern := range f.byID {
		if intern.SheetRow != nil && *intern.SheetRow > highest {
			highest = *intern.SheetRow
		}
	}
	return highest, nil
}

func (f *fakeInternRepo) InTx(ctx context.Context, _ time.Duration, fn func(ctx context.Context, repo repository.InternRepository) error) error {
	f.mu.Lock()
	snapshot := make(map[string]*domain.Intern, len(f.byID))
	for id, intern := range f.byID {
		clone := *intern
		snapshot[id] = &clone
	}
	snapshotNext := f.nextID
	f.mu.Unlock()

	if err := fn(ctx, f); err != nil {
		f.mu.Lock()
		f.byID = snapshot
		f.nextID = snapshotNext
		f.mu.Unlock()
		return err
	}
	return nil
}

// fakeSource serves canned roster rows. rows[0] corresponds to sheet row 2.
type fakeSource struct {
	header []string
	rows   [][]string
	// onFirstSheet lets tests block a pass mid-flight.
	onFirstSheet func()
}

func (f *fakeSource) FirstSheetName(context.Context) (string, error) {
	if f.onFirstSheet != nil {
		f.onFirstSheet()
	}
	return "Form Responses 1", nil
}

func (f *fakeSource) Header(context.Context, string) ([]string, error) {
	return f.header, nil
}

func (f *fakeSource) Rows(_ context.Context, _ string, fromRow int) ([][]string, error) {
	idx := fromRow - 2
	if idx < 0 {
		idx = 0
	}
	if idx >= len(f.rows) {
		return nil, nil
	}
	return f.rows[idx:], nil
}

// fakeMailer records sent messages.
type fakeMailer struct {
	mu   sync.Mutex
	sent []email.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeContactRepo is an in-memory ContactRepository.
type fakeContactRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.ContactSubmission
	nextID int
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{byID: make(map[string]*domain.ContactSubmission)}
}

func (f *fakeContactRepo) Create(_ context.Context, contact *domain.ContactSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	contact.ID = fmt.Sprintf("contact-%d", f.nextID)
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	clone := *contact
	f.byID[contact.ID] = &clone
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id string) (*domain.ContactSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	contact, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *contact
	return &clone, nil
}

func (f *fakeContactRepo) ListWithFilter(_ context.Context, filter repository.ContactFilter) ([]domain.ContactSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ContactSubmission
	for _, contact := range f.byID {
		if filter.Status != nil && contact.Status != *filter.Status {
			continue
		}
		out = append(out, *contact)
	}
	return out, nil
}

func (f *fakeContactRepo) UpdateStatus(_ context.Context, id string, status domain.ContactStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	contact, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	contact.Status = status
	return nil
}

func (f *fakeContactRepo) Stats(_ context.Context) (*domain.ContactStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &domain.ContactStats{}
	for _, contact := range f.byID {
		stats.Total++
		switch contact.Status {
		case domain.ContactStatusNew:
			stats.New++
		case domain.ContactStatusRead:
			stats.Read++
		case domain.ContactStatusResponded:
			stats.Responded++
		}
	}
	return stats, nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Admin
	nextID int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: make(map[string]*domain.Admin)}
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	admin.ID = fmt.Sprintf("admin-%d", f.nextID)
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt
	clone := *admin
	f.byID[admin.ID] = &clone
	return nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *admin
	return &clone, nil
}

func (f *fakeAdminRepo) GetByEmail(_ context.Context, emailAddr string) (*domain.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, admin := range f.byID {
		if admin.Email == emailAddr {
			clone := *admin
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdminRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	admin.PasswordHash = passwordHash
	return nil
}
