package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/enrollment"
	apperrors "github.com/spec-kit/internship-service/pkg/util/errorutil"
)

func newInternServiceAt(repo *fakeInternRepo, mailer *fakeMailer, now time.Time) *InternService {
	return NewInternService(InternDependencies{
		InternRepo: repo,
		Mailer:     mailer,
		Now:        func() time.Time { return now },
	})
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}

func TestCreateInternAssignsCohortAndIdentifier(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	svc := newInternServiceAt(repo, &fakeMailer{},
		time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC))

	intern, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name:   "Asha Rao",
		Email:  "Asha@Example.com",
		Domain: "MERN Stack",
	})
	require.NoError(t, err)

	assert.Equal(t, "asha@example.com", intern.Email)
	assert.True(t, enrollment.IsValidInternID(intern.InternID))
	assert.Contains(t, intern.InternID, "MERN-")
	assert.Equal(t, 3, intern.Phase)
	assert.Equal(t, time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC), intern.StartDate)
	assert.Equal(t, intern.StartDate.AddDate(0, 0, 28), intern.EndDate)
	assert.Equal(t, domain.InternStatusPending, intern.Status)
	assert.Nil(t, intern.SheetRow)
}

func TestCreateInternRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	svc := newInternServiceAt(repo, &fakeMailer{}, time.Now())

	input := InternCreateInput{Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack"}
	_, err := svc.CreateIntern(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.CreateIntern(context.Background(), input)
	assertDomainErrorCode(t, err, "CONFLICT")
}

func TestCreateInternValidatesMandatoryFields(t *testing.T) {
	t.Parallel()

	svc := newInternServiceAt(newFakeInternRepo(), &fakeMailer{}, time.Now())

	_, err := svc.CreateIntern(context.Background(), InternCreateInput{Name: "X", Email: "x@example.com"})
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func TestVerifyInternID(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	svc := newInternServiceAt(repo, &fakeMailer{}, time.Now())

	created, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack",
	})
	require.NoError(t, err)

	t.Run("malformed identifier", func(t *testing.T) {
		_, err := svc.VerifyInternID(context.Background(), "not-an-id")
		assertDomainErrorCode(t, err, "VALIDATION_FAILED")
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := svc.VerifyInternID(context.Background(), "MERN-25-P1-ZZZZ")
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})

	t.Run("known identifier", func(t *testing.T) {
		intern, err := svc.VerifyInternID(context.Background(), created.InternID)
		require.NoError(t, err)
		assert.Equal(t, created.InternID, intern.InternID)
	})

	t.Run("case insensitive lookup", func(t *testing.T) {
		intern, err := svc.VerifyInternID(context.Background(), "  "+strings.ToLower(created.InternID)+"  ")
		require.NoError(t, err)
		assert.Equal(t, created.InternID, intern.InternID)
	})
}

func TestUpdateInternKeepsIdentifierAndEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	svc := newInternServiceAt(repo, &fakeMailer{}, time.Now())

	created, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack",
	})
	require.NoError(t, err)

	newName := "Asha R."
	active := domain.InternStatusActive
	updated, err := svc.UpdateIntern(context.Background(), created.ID, InternUpdateInput{
		Name:   &newName,
		Status: &active,
	})
	require.NoError(t, err)

	assert.Equal(t, "Asha R.", updated.Name)
	assert.Equal(t, domain.InternStatusActive, updated.Status)
	assert.Equal(t, created.InternID, updated.InternID)
	assert.Equal(t, created.Email, updated.Email)
}

func TestUpdateInternRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	svc := newInternServiceAt(repo, &fakeMailer{}, time.Now())

	created, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack",
	})
	require.NoError(t, err)

	bogus := domain.InternStatus("bogus")
	_, err = svc.UpdateIntern(context.Background(), created.ID, InternUpdateInput{Status: &bogus})
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func TestSendOfferLetterOnlyOnce(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	mailer := &fakeMailer{}
	svc := newInternServiceAt(repo, mailer, time.Now())

	created, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack",
	})
	require.NoError(t, err)

	intern, err := svc.SendOfferLetter(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, intern.OfferSent)
	assert.Equal(t, 1, mailer.sentCount())
	assert.Contains(t, mailer.sent[0].Subject, intern.InternID)

	_, err = svc.SendOfferLetter(context.Background(), created.ID)
	assertDomainErrorCode(t, err, "CONFLICT")
	assert.Equal(t, 1, mailer.sentCount())
}

func TestSendCertificateRequiresOfferFirst(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	mailer := &fakeMailer{}
	svc := newInternServiceAt(repo, mailer, time.Now())

	created, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack",
	})
	require.NoError(t, err)

	_, err = svc.SendCertificate(context.Background(), created.ID)
	assertDomainErrorCode(t, err, "CONFLICT")
	assert.Equal(t, 0, mailer.sentCount())

	_, err = svc.SendOfferLetter(context.Background(), created.ID)
	require.NoError(t, err)

	intern, err := svc.SendCertificate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, intern.CertSent)
	assert.Equal(t, domain.InternStatusCompleted, intern.Status)
	assert.Equal(t, 2, mailer.sentCount())

	_, err = svc.SendCertificate(context.Background(), created.ID)
	assertDomainErrorCode(t, err, "CONFLICT")
}

func TestSendOfferLetterMailFailureLeavesFlagUnset(t *testing.T) {
	t.Parallel()

	repo := newFakeInternRepo()
	mailer := &fakeMailer{err: assert.AnError}
	svc := newInternServiceAt(repo, mailer, time.Now())

	created, err := svc.CreateIntern(context.Background(), InternCreateInput{
		Name: "Asha Rao", Email: "asha@example.com", Domain: "MERN Stack",
	})
	require.NoError(t, err)

	_, err = svc.SendOfferLetter(context.Background(), created.ID)
	require.Error(t, err)

	intern, err := svc.GetIntern(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, intern.OfferSent)
}
