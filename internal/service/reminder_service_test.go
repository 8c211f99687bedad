package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"timeslots-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderDue(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	interval := 2 * time.Hour

	tests := []struct {
		name      string
		lastFired time.Time
		want      bool
	}{
		{"never fired", time.Time{}, true},
		{"exactly one interval ago", now.Add(-2 * time.Hour), true},
		{"older than interval", now.Add(-3 * time.Hour), true},
		{"within interval", now.Add(-90 * time.Minute), false},
		{"just fired", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReminderDue(tt.lastFired, interval, now))
		})
	}
}

func TestGetSettingsDefaults(t *testing.T) {
	svc := NewReminderService(newFakeReminderRepo(), newFakeReminderState(), &fakeEmailSender{})

	settings, err := svc.GetSettings(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.False(t, settings.Enabled)
	assert.Equal(t, entity.DefaultReminderIntervalHours, settings.IntervalHours)
}

func TestUpdateSettingsValidation(t *testing.T) {
	svc := NewReminderService(newFakeReminderRepo(), newFakeReminderState(), &fakeEmailSender{})
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.UpdateSettings(ctx, &entity.ReminderSettings{UserID: userID, Enabled: true, IntervalHours: 0, Email: "a@b.c"})
	assert.Error(t, err)

	_, err = svc.UpdateSettings(ctx, &entity.ReminderSettings{UserID: userID, Enabled: true, IntervalHours: 25, Email: "a@b.c"})
	assert.Error(t, err)

	_, err = svc.UpdateSettings(ctx, &entity.ReminderSettings{UserID: userID, Enabled: true, IntervalHours: 2})
	assert.Error(t, err, "enabling requires an email address")

	saved, err := svc.UpdateSettings(ctx, &entity.ReminderSettings{UserID: userID, Enabled: true, IntervalHours: 2, Email: "a@b.c"})
	require.NoError(t, err)
	assert.False(t, saved.UpdatedAt.IsZero())

	loaded, err := svc.GetSettings(ctx, userID)
	require.NoError(t, err)
	assert.True(t, loaded.Enabled)
}

func TestProcessDueRemindersSendsAndRecords(t *testing.T) {
	settingsRepo := newFakeReminderRepo()
	stateRepo := newFakeReminderState()
	email := &fakeEmailSender{}
	svc := NewReminderService(settingsRepo, stateRepo, email).(*reminderService)

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	dueUser := uuid.New()
	freshUser := uuid.New()
	disabledUser := uuid.New()

	settingsRepo.settings[dueUser] = &entity.ReminderSettings{UserID: dueUser, Enabled: true, IntervalHours: 2, Email: "due@example.com"}
	settingsRepo.settings[freshUser] = &entity.ReminderSettings{UserID: freshUser, Enabled: true, IntervalHours: 2, Email: "fresh@example.com"}
	settingsRepo.settings[disabledUser] = &entity.ReminderSettings{UserID: disabledUser, Enabled: false, IntervalHours: 2, Email: "off@example.com"}

	stateRepo.fired[freshUser] = now.Add(-time.Hour)

	require.NoError(t, svc.ProcessDueReminders(context.Background()))

	assert.Equal(t, []string{"due@example.com"}, email.sent)
	assert.Equal(t, now, stateRepo.fired[dueUser])
	assert.Equal(t, now.Add(-time.Hour), stateRepo.fired[freshUser], "fresh reminder must keep its timestamp")
	assert.NotContains(t, stateRepo.fired, disabledUser)
}

func TestProcessDueRemindersRepeatsAfterInterval(t *testing.T) {
	settingsRepo := newFakeReminderRepo()
	stateRepo := newFakeReminderState()
	email := &fakeEmailSender{}
	svc := NewReminderService(settingsRepo, stateRepo, email).(*reminderService)

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	userID := uuid.New()
	settingsRepo.settings[userID] = &entity.ReminderSettings{UserID: userID, Enabled: true, IntervalHours: 2, Email: "u@example.com"}

	require.NoError(t, svc.ProcessDueReminders(context.Background()))
	require.NoError(t, svc.ProcessDueReminders(context.Background()))
	assert.Len(t, email.sent, 1, "second run inside the interval must not send")

	now = now.Add(2 * time.Hour)
	require.NoError(t, svc.ProcessDueReminders(context.Background()))
	assert.Len(t, email.sent, 2)
}

func TestProcessDueRemindersSendFailureNotRecorded(t *testing.T) {
	settingsRepo := newFakeReminderRepo()
	stateRepo := newFakeReminderState()
	email := &fakeEmailSender{sendErr: fmt.Errorf("smtp down")}
	svc := NewReminderService(settingsRepo, stateRepo, email).(*reminderService)

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	userID := uuid.New()
	settingsRepo.settings[userID] = &entity.ReminderSettings{UserID: userID, Enabled: true, IntervalHours: 2, Email: "u@example.com"}

	require.NoError(t, svc.ProcessDueReminders(context.Background()))
	assert.NotContains(t, stateRepo.fired, userID, "failed send must stay due")

	// Delivery recovers; the pending reminder goes out on the next run.
	email.sendErr = nil
	require.NoError(t, svc.ProcessDueReminders(context.Background()))
	assert.Equal(t, []string{"u@example.com"}, email.sent)
}
