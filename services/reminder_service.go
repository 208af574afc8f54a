// services/reminder_service.go
package services

import (
	"errors"
	"log"
	"math/rand"
	"thevoices-backend/models"
	"thevoices-backend/utils"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	// DefaultToleranceMinutes is the ± window within which "now" counts as
	// matching a configured slot time.
	DefaultToleranceMinutes = 2

	// The scan runs every 5 minutes. With a 2-minute tolerance each side,
	// 5 > 2*2 guarantees a due slot is caught by exactly one tick per day.
	reminderCronSpec = "*/5 * * * *"

	writingPlanLink = "/dashboard/writing-plan"
)

// PlanStore is the bulk read of all writing plans with their owning users.
type PlanStore interface {
	ListAllWithUsers() ([]models.WritingPlan, error)
}

// ReminderLedger is the atomic check-and-reserve over sent reminders.
// Reserve returns true when no record existed for the key and one is now
// durably recorded; false when the slot was already consumed today.
type ReminderLedger interface {
	CheckAndReserve(userID uuid.UUID, date time.Time, day string) (bool, error)
}

// Notifier delivers a reminder to the user. Fire-and-forget from the
// scheduler's perspective: a delivery failure is logged but never rolls back
// the ledger reservation, so delivery is at-most-once.
type Notifier interface {
	Notify(user *models.User, message string, link string) error
}

// Clock supplies "now" so tests can drive ticks at arbitrary instants.
type Clock func() time.Time

// ReminderService scans all writing plans on a fixed interval and pushes a
// motivational reminder to each user whose local time matches one of their
// configured weekday slots.
type ReminderService struct {
	plans     PlanStore
	ledger    ReminderLedger
	notifier  Notifier
	clock     Clock
	rng       *rand.Rand
	tolerance int
	cron      *cron.Cron
}

func NewReminderService(plans PlanStore, ledger ReminderLedger, notifier Notifier) *ReminderService {
	return &ReminderService{
		plans:     plans,
		ledger:    ledger,
		notifier:  notifier,
		clock:     time.Now,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		tolerance: DefaultToleranceMinutes,
	}
}

// StartScheduler registers the recurring scan and starts the cron runner.
func (s *ReminderService) StartScheduler() error {
	c := cron.New()
	if _, err := c.AddFunc(reminderCronSpec, s.SendDueReminders); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	log.Println("Writing plan reminder scheduler started")
	return nil
}

// StopScheduler stops the cron runner. A tick already in flight completes.
func (s *ReminderService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
		log.Println("Writing plan reminder scheduler stopped")
	}
}

// SendDueReminders runs one scan over all plans. Exported so tests (and a
// manual trigger) can drive ticks without the cron runner.
func (s *ReminderService) SendDueReminders() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Writing plan reminder tick panicked: %v", r)
		}
	}()

	plans, err := s.plans.ListAllWithUsers()
	if err != nil {
		log.Printf("Failed to fetch writing plans: %v", err)
		return
	}

	now := s.clock()
	today := utils.BeginningOfDay(now)

	for i := range plans {
		s.processPlan(&plans[i], now, today)
	}
}

// processPlan checks one plan and, if a slot is due and not yet consumed,
// reserves the send and dispatches the notification. Reservation comes
// before delivery: a crash in between loses one reminder, never doubles it.
func (s *ReminderService) processPlan(plan *models.WritingPlan, now, today time.Time) {
	user := &plan.User

	defer func() {
		if r := recover(); r != nil {
			log.Printf("User %s: reminder processing panicked: %v", user.ID, r)
		}
	}()

	if user.Timezone == "" {
		return
	}

	weekday, localTime, err := utils.ResolveLocalTime(user.Timezone, now)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidTimezone) {
			log.Printf("User %s: %v, skipping", user.ID, err)
		} else {
			log.Printf("User %s: failed to resolve local time: %v", user.ID, err)
		}
		return
	}

	slot, due := MatchSlot(plan, weekday, localTime, s.tolerance)
	if !due {
		return
	}

	reserved, err := s.ledger.CheckAndReserve(user.ID, today, slot.Label)
	if err != nil {
		// Store unreachable: skip this user now, the next tick retries.
		log.Printf("User %s: reminder ledger unavailable: %v", user.ID, err)
		return
	}
	if !reserved {
		return // already sent today for this slot
	}

	message := utils.MotivationalMessage(user.Username, slot.Goal, localTime, s.rng)
	if err := s.notifier.Notify(user, message, writingPlanLink); err != nil {
		// The reservation stands even though delivery failed; retrying on a
		// flaky channel would risk a notification storm.
		log.Printf("User %s: failed to deliver reminder: %v", user.ID, err)
	}
}

// MatchSlot decides whether the weekday's slot is due at the given local
// time. The distance is linear minutes-since-midnight, deliberately not
// circular: a slot at 23:59 checked at 00:01 the next day is 1438 minutes
// away, not 2.
func MatchSlot(plan *models.WritingPlan, weekday int, localTime string, toleranceMinutes int) (models.DaySlot, bool) {
	if weekday < 0 || weekday > 6 {
		return models.DaySlot{}, false
	}

	slot := plan.Slot(weekday)
	if !slot.Configured() {
		return slot, false
	}

	localMinutes, err := utils.TimeToMinutes(localTime)
	if err != nil {
		return slot, false
	}
	slotMinutes, err := utils.TimeToMinutes(slot.Time)
	if err != nil {
		return slot, false
	}

	diff := localMinutes - slotMinutes
	if diff < 0 {
		diff = -diff
	}
	return slot, diff <= toleranceMinutes
}
