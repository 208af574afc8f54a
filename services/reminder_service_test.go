package services

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"thevoices-backend/models"
	"thevoices-backend/utils"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlanStore serves a fixed plan list.
type fakePlanStore struct {
	plans []models.WritingPlan
	err   error
}

func (f *fakePlanStore) ListAllWithUsers() ([]models.WritingPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plans, nil
}

type reservation struct {
	userID uuid.UUID
	date   time.Time
	day    string
}

// fakeLedger mirrors the conditional-insert contract: first reservation of a
// key wins, repeats return false.
type fakeLedger struct {
	mu       sync.Mutex
	reserved map[string]bool
	calls    []reservation
	err      error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{reserved: make(map[string]bool)}
}

func (f *fakeLedger) CheckAndReserve(userID uuid.UUID, date time.Time, day string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return false, f.err
	}

	f.calls = append(f.calls, reservation{userID, date, day})
	key := userID.String() + "|" + date.Format("2006-01-02") + "|" + day
	if f.reserved[key] {
		return false, nil
	}
	f.reserved[key] = true
	return true, nil
}

type delivery struct {
	userID  uuid.UUID
	message string
	link    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []delivery
	err  error
}

func (f *fakeNotifier) Notify(user *models.User, message string, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, delivery{user.ID, message, link})
	return f.err
}

func mondayPlan(user models.User) models.WritingPlan {
	return models.WritingPlan{
		ID:         uuid.New(),
		UserID:     user.ID,
		User:       user,
		MondayGoal: 500,
		MondayTime: "09:00",
	}
}

func newTestService(plans *fakePlanStore, ledger *fakeLedger, notifier *fakeNotifier, now time.Time) *ReminderService {
	s := NewReminderService(plans, ledger, notifier)
	s.clock = func() time.Time { return now }
	s.rng = rand.New(rand.NewSource(1))
	return s
}

func TestMatchSlotToleranceBoundary(t *testing.T) {
	plan := mondayPlan(models.User{ID: uuid.New()})

	cases := []struct {
		localTime string
		due       bool
	}{
		{"09:00", true},
		{"09:02", true}, // exactly tolerance
		{"09:03", false},
		{"08:58", true},
		{"08:57", false},
	}
	for _, tc := range cases {
		slot, due := MatchSlot(&plan, int(time.Monday), tc.localTime, DefaultToleranceMinutes)
		assert.Equal(t, tc.due, due, tc.localTime)
		assert.Equal(t, "Monday", slot.Label)
		assert.Equal(t, 500, slot.Goal)
	}
}

func TestMatchSlotUnconfigured(t *testing.T) {
	user := models.User{ID: uuid.New()}

	noGoal := models.WritingPlan{UserID: user.ID, User: user, MondayTime: "09:00"}
	_, due := MatchSlot(&noGoal, int(time.Monday), "09:00", DefaultToleranceMinutes)
	assert.False(t, due, "goal 0 must never be due")

	noTime := models.WritingPlan{UserID: user.ID, User: user, MondayGoal: 500}
	_, due = MatchSlot(&noTime, int(time.Monday), "09:00", DefaultToleranceMinutes)
	assert.False(t, due, "empty time must never be due")

	badTime := models.WritingPlan{UserID: user.ID, User: user, MondayGoal: 500, MondayTime: "9am"}
	_, due = MatchSlot(&badTime, int(time.Monday), "09:00", DefaultToleranceMinutes)
	assert.False(t, due, "malformed time must never be due")
}

func TestMatchSlotLinearDistanceAcrossMidnight(t *testing.T) {
	// A slot at 23:59 checked at 00:01 is 1438 minutes away, not 2. The
	// distance is deliberately linear, never wrapped around midnight.
	user := models.User{ID: uuid.New()}
	plan := models.WritingPlan{UserID: user.ID, User: user, MondayGoal: 500, MondayTime: "23:59"}

	_, due := MatchSlot(&plan, int(time.Monday), "00:01", DefaultToleranceMinutes)
	assert.False(t, due)

	_, due = MatchSlot(&plan, int(time.Monday), "23:58", DefaultToleranceMinutes)
	assert.True(t, due)
}

func TestSendDueRemindersEndToEnd(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "anna", Timezone: "America/New_York"}
	plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(user)}}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}

	// Monday 2025-06-23 13:00 UTC = 09:00 EDT in New York.
	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	s.SendDueReminders()

	require.Len(t, notifier.sent, 1)
	sent := notifier.sent[0]
	assert.Equal(t, user.ID, sent.userID)
	assert.Equal(t, "/dashboard/writing-plan", sent.link)
	assert.Contains(t, sent.message, "anna")

	bucket, _ := utils.TimeBucket("09:00")
	assert.Equal(t, utils.BucketMorning, bucket)

	// Three minutes later the tick must not deliver again.
	s.clock = func() time.Time { return now.Add(3 * time.Minute) }
	s.SendDueReminders()
	assert.Len(t, notifier.sent, 1)
}

func TestSendDueRemindersMessageContainsGoal(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "anna", Timezone: "America/New_York"}
	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)

	// The goal text only appears in some templates; sample seeds until one
	// of the goal-bearing morning templates is drawn.
	foundGoal := false
	for seed := int64(0); seed < 32 && !foundGoal; seed++ {
		plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(user)}}
		notifier := &fakeNotifier{}
		s := newTestService(plans, newFakeLedger(), notifier, now)
		s.rng = rand.New(rand.NewSource(seed))

		s.SendDueReminders()
		require.Len(t, notifier.sent, 1)
		foundGoal = strings.Contains(notifier.sent[0].message, "500 words")
	}
	assert.True(t, foundGoal, "no delivered message interpolated the 500-word goal")
}

func TestSendDueRemindersReplayIdempotent(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "anna", Timezone: "America/New_York"}
	plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(user)}}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	// The same tick running twice (duplicate invocation) delivers once.
	s.SendDueReminders()
	s.SendDueReminders()

	assert.Len(t, notifier.sent, 1)
	assert.Len(t, ledger.calls, 2)
}

func TestSendDueRemindersMissingTimezone(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "anna"} // no timezone
	plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(user)}}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	s.SendDueReminders()

	assert.Empty(t, ledger.calls, "missing timezone must not touch the ledger")
	assert.Empty(t, notifier.sent, "missing timezone must not deliver")
}

func TestSendDueRemindersInvalidTimezoneSkipsUser(t *testing.T) {
	broken := models.User{ID: uuid.New(), Username: "broken", Timezone: "Mars/Olympus_Mons"}
	ok := models.User{ID: uuid.New(), Username: "anna", Timezone: "America/New_York"}
	plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(broken), mondayPlan(ok)}}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	s.SendDueReminders()

	// The bad zone is skipped; the healthy user still gets their reminder.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, ok.ID, notifier.sent[0].userID)
}

func TestSendDueRemindersLedgerUnavailable(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "anna", Timezone: "America/New_York"}
	plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(user)}}
	ledger := newFakeLedger()
	ledger.err = errors.New("connection refused")
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	s.SendDueReminders()
	assert.Empty(t, notifier.sent, "store failure must never be treated as a reservation")

	// Store back up within the window: the next tick retries and delivers.
	ledger.err = nil
	s.clock = func() time.Time { return now.Add(time.Minute) }
	s.SendDueReminders()
	assert.Len(t, notifier.sent, 1)
}

func TestSendDueRemindersDeliveryFailureConsumesSlot(t *testing.T) {
	user := models.User{ID: uuid.New(), Username: "anna", Timezone: "America/New_York"}
	plans := &fakePlanStore{plans: []models.WritingPlan{mondayPlan(user)}}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{err: errors.New("push endpoint gone")}

	now := time.Date(2025, 6, 23, 13, 0, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	s.SendDueReminders()
	require.Len(t, notifier.sent, 1)

	// The reservation is not rolled back on delivery failure: still within
	// the window, the next tick must not retry. At-most-once by design.
	notifier.err = nil
	s.clock = func() time.Time { return now.Add(time.Minute) }
	s.SendDueReminders()
	assert.Len(t, notifier.sent, 1)
}

func TestSendDueRemindersLedgerKeyFrames(t *testing.T) {
	// Monday 16:30 UTC is Tuesday 01:30 in Tokyo. The day label is the
	// user's local weekday, but the date key stays in the scheduler's frame.
	user := models.User{ID: uuid.New(), Username: "kei", Timezone: "Asia/Tokyo"}
	plan := models.WritingPlan{
		ID:          uuid.New(),
		UserID:      user.ID,
		User:        user,
		TuesdayGoal: 300,
		TuesdayTime: "01:30",
	}
	plans := &fakePlanStore{plans: []models.WritingPlan{plan}}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}

	now := time.Date(2025, 6, 23, 16, 30, 0, 0, time.UTC)
	s := newTestService(plans, ledger, notifier, now)

	s.SendDueReminders()

	require.Len(t, ledger.calls, 1)
	call := ledger.calls[0]
	assert.Equal(t, user.ID, call.userID)
	assert.Equal(t, "Tuesday", call.day)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), call.date)
	assert.Len(t, notifier.sent, 1)
}

func TestSendDueRemindersPlanStoreError(t *testing.T) {
	plans := &fakePlanStore{err: errors.New("connection refused")}
	ledger := newFakeLedger()
	notifier := &fakeNotifier{}

	s := newTestService(plans, ledger, notifier, time.Now())

	// Must log and return, not panic.
	s.SendDueReminders()
	assert.Empty(t, ledger.calls)
	assert.Empty(t, notifier.sent)
}
