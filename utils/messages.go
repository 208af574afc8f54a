// utils/messages.go
package utils

import (
	"fmt"
	"math/rand"
	"strings"
)

// Time-of-day buckets for reminder copy.
const (
	BucketMorning   = "morning"   // 05:00–11:59
	BucketAfternoon = "afternoon" // 12:00–16:59
	BucketEvening   = "evening"   // 17:00–20:59
	BucketNight     = "night"     // everything else
)

// Message templates use [Greeting], [Username] and [GoalText] placeholders.
var messagesByBucket = map[string][]string{
	BucketMorning: {
		"[Greeting], [Username]! ☕\n\nYou wanted to write this morning.\n\nWant to start a quick sprint before your day gets busy?\n\n(Even 10 minutes counts.)",
		"Good morning, [Username]! 🌅\n\nFresh day, fresh page.\n\nReady to write [GoalText]?\n\n(No pressure if not - I'll be here later too.)",
		"[Greeting] [Username] 👋\n\nYou set this morning as writing time.\n\nEven 15 minutes before coffee kicks in counts.\n\nWant to try?",
		"[Username], morning writing time 🖋️\n\nYour brain is fresh. Want to capture some words before the day starts?\n\n(Messy drafts welcome.)",
	},
	BucketAfternoon: {
		"[Greeting] [Username]!\n\nAfternoon writing break? ☕\n\nYou planned to write [GoalText] today.\n\nWant to spend 15 minutes on it?",
		"[Username], ready for an afternoon sprint?\n\nOther writers are here too. You're not alone.\n\nEven 10 minutes counts. 🌱",
		"[Greeting] [Username] 👋\n\nMidday check-in: want to write?\n\nNo pressure - even one paragraph is progress.\n\n[Start a sprint]",
		"Afternoon, [Username]!\n\nYou wanted to write today.\n\nPerfect time for a quick 20-minute sprint?\n\n(If not now, that's okay too.)",
	},
	BucketEvening: {
		"[Greeting], [Username]! 🌙\n\nEnd-of-day writing session?\n\nYou planned to write [GoalText] today.\n\nWant to unwind with a sprint?",
		"[Username], evening writing time 🖋️\n\nNo rush. No pressure.\n\nJust you, your words, and 25 minutes.\n\nReady?",
		"[Greeting] [Username]!\n\nBefore you close the day - want to write?\n\nEven 5 minutes counts as showing up.\n\n(Or skip if you're tired - that's valid too.)",
		"[Username], this is your gentle reminder 🌱\n\nYou set tonight for writing.\n\nEven one sentence is progress.\n\nWant to give it a try?",
	},
	BucketNight: {
		"[Greeting] [Username], night owl! 🦉\n\nLate-night writing session?\n\nYou wanted to write [GoalText] today.\n\nWant to try before bed?",
		"[Username], it's late but... want to write? 🌙\n\nNo pressure at all.\n\nEven 10 minutes before sleep counts.\n\n(Or save it for tomorrow - totally fine.)",
		"[Greeting] [Username]!\n\nI know it's late.\n\nIf you're up for it: quick 15-minute sprint?\n\nIf not: tomorrow's a new day. ❤️",
		"[Username], late-night reminder 🌛\n\nYou set this time for writing.\n\nEven capturing a few thoughts counts.\n\nWant to try? (Or rest - that's important too.)",
	},
}

// TimeBucket maps an "HH:MM" local time to its bucket and greeting word.
func TimeBucket(localTime string) (bucket, greeting string) {
	minutes, err := TimeToMinutes(localTime)
	if err != nil {
		return BucketNight, "Hey"
	}
	hours := minutes / 60
	switch {
	case hours >= 5 && hours < 12:
		return BucketMorning, "Morning"
	case hours >= 12 && hours < 17:
		return BucketAfternoon, "Hey"
	case hours >= 17 && hours < 21:
		return BucketEvening, "Evening"
	default:
		return BucketNight, "Hey"
	}
}

// MotivationalMessage picks a reminder message for the user's local time of
// day, uniformly at random from the bucket's templates. The random source is
// the caller's so tests can pin the choice with a fixed seed.
func MotivationalMessage(username string, goal int, localTime string, rng *rand.Rand) string {
	goalText := "something"
	if goal > 0 {
		goalText = fmt.Sprintf("%d words", goal)
	}

	bucket, greeting := TimeBucket(localTime)
	templates := messagesByBucket[bucket]
	message := templates[rng.Intn(len(templates))]

	message = strings.ReplaceAll(message, "[Greeting]", greeting)
	message = strings.ReplaceAll(message, "[Username]", username)
	message = strings.ReplaceAll(message, "[GoalText]", goalText)
	return message
}
