package workers

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/thirtydaygen/challenge-engine/internal/core/domain"
)

type SubscriptionSource interface {
	ListForReminder(ctx context.Context, day time.Time) ([]*domain.PushSubscription, error)
}

type PushSender interface {
	Send(ctx context.Context, sub *domain.PushSubscription, title, body string) error
	IsGone(err error) bool
}

// ReminderWorker nudges users who have an active challenge with no
// completed record for the current day. It runs on a cron schedule,
// typically once per day in the evening.
type ReminderWorker struct {
	subs     SubscriptionSource
	sender   PushSender
	schedule string
	cron     *cron.Cron
}

func NewReminderWorker(subs SubscriptionSource, sender PushSender, schedule string) *ReminderWorker {
	if schedule == "" {
		schedule = "0 18 * * *"
	}
	return &ReminderWorker{
		subs:     subs,
		sender:   sender,
		schedule: schedule,
		cron:     cron.New(),
	}
}

func (w *ReminderWorker) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		w.run(ctx)
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	log.Printf("Reminder worker started (schedule %q)", w.schedule)

	go func() {
		<-ctx.Done()
		log.Println("Reminder worker shutting down...")
		<-w.cron.Stop().Done()
	}()

	return nil
}

func (w *ReminderWorker) run(ctx context.Context) {
	day := domain.DayOnly(time.Now().UTC())

	subs, err := w.subs.ListForReminder(ctx, day)
	if err != nil {
		log.Printf("Reminder worker: failed to load subscriptions: %v", err)
		return
	}

	if len(subs) == 0 {
		return
	}

	sent := 0
	for _, sub := range subs {
		err := w.sender.Send(ctx, sub, "Don't break the chain!", "You haven't checked off today's action yet.")
		if err != nil {
			if w.sender.IsGone(err) {
				log.Printf("Reminder worker: endpoint gone for user %s", sub.UserID)
			} else {
				log.Printf("Reminder worker: delivery failed for user %s: %v", sub.UserID, err)
			}
			continue
		}
		sent++
	}

	log.Printf("Reminder worker: sent %d/%d reminders", sent, len(subs))
}
