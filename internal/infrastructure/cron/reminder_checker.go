package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"timeslots-service/internal/domain/service"

	"github.com/robfig/cron/v3"
)

// ReminderChecker periodically scans for users whose tracking reminder is due
type ReminderChecker struct {
	reminderService service.ReminderService
	cron            *cron.Cron
	interval        time.Duration
}

// NewReminderChecker creates a new reminder checker
func NewReminderChecker(reminderService service.ReminderService, checkInterval time.Duration) *ReminderChecker {
	return &ReminderChecker{
		reminderService: reminderService,
		cron:            cron.New(),
		interval:        checkInterval,
	}
}

// Start starts the reminder checker
func (r *ReminderChecker) Start() error {
	cronExpr := fmt.Sprintf("@every %s", r.interval.String())

	log.Printf("Starting reminder checker with interval: %s", r.interval)

	_, err := r.cron.AddFunc(cronExpr, func() {
		r.checkReminders()
	})

	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	r.cron.Start()

	// Users overdue across a restart get their reminder right away rather
	// than waiting out the first tick.
	go r.checkReminders()

	log.Println("Reminder checker started successfully")

	return nil
}

// Stop stops the reminder checker
func (r *ReminderChecker) Stop() {
	log.Println("Stopping reminder checker...")
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Println("Reminder checker stopped")
}

// checkReminders runs one due-reminder sweep
func (r *ReminderChecker) checkReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := r.reminderService.ProcessDueReminders(ctx); err != nil {
		log.Printf("Error processing due reminders: %v", err)
	}
}
