package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/internship-service/internal/domain"
	"github.com/spec-kit/internship-service/internal/events"
)

func TestSubmitContact(t *testing.T) {
	t.Parallel()

	repo := newFakeContactRepo()
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	received := 0
	dispatcher.Subscribe(events.EventContactReceived, func(context.Context, events.Event) error {
		received++
		return nil
	})
	svc := NewContactService(repo, dispatcher)

	contact, err := svc.SubmitContact(context.Background(), ContactCreateInput{
		Name:    "  Asha Rao  ",
		Email:   "Asha@Example.com",
		Subject: "Question about phases",
		Message: "When does phase 2 start?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", contact.Name)
	assert.Equal(t, "asha@example.com", contact.Email)
	assert.Equal(t, domain.ContactStatusNew, contact.Status)
	assert.Equal(t, 1, received)
}

func TestSubmitContactValidatesFields(t *testing.T) {
	t.Parallel()

	svc := NewContactService(newFakeContactRepo(), nil)

	_, err := svc.SubmitContact(context.Background(), ContactCreateInput{
		Name: "Asha", Email: "asha@example.com", Subject: "Hi",
	})
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func TestUpdateContactStatus(t *testing.T) {
	t.Parallel()

	repo := newFakeContactRepo()
	svc := NewContactService(repo, nil)

	contact, err := svc.SubmitContact(context.Background(), ContactCreateInput{
		Name: "Asha", Email: "asha@example.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateContactStatus(context.Background(), contact.ID, domain.ContactStatusRead)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusRead, updated.Status)

	_, err = svc.UpdateContactStatus(context.Background(), contact.ID, domain.ContactStatus("bogus"))
	assertDomainErrorCode(t, err, "VALIDATION_FAILED")
}

func TestGetContactMarksNewAsRead(t *testing.T) {
	t.Parallel()

	repo := newFakeContactRepo()
	svc := NewContactService(repo, nil)

	contact, err := svc.SubmitContact(context.Background(), ContactCreateInput{
		Name: "Asha", Email: "asha@example.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)

	opened, err := svc.GetContact(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusRead, opened.Status)

	again, err := svc.GetContact(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContactStatusRead, again.Status)
}

func TestContactStats(t *testing.T) {
	t.Parallel()

	repo := newFakeContactRepo()
	svc := NewContactService(repo, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.SubmitContact(context.Background(), ContactCreateInput{
			Name: "User", Email: "user@example.com", Subject: "Hi", Message: "Hello",
		})
		require.NoError(t, err)
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(3), stats.New)
}
