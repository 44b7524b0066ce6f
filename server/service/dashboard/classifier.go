package dashboard

import (
	"time"

	"github.com/cardloop/cardloop/server/timezone"
	"github.com/cardloop/cardloop/store"
)

// Buckets groups a learner's review records by how soon they are due,
// relative to a reference time. All windows are whole calendar days in the
// reference time's location.
//
// Within3Days is a subset of Within5Days: a card due in two or three days
// appears in both, mirroring a dashboard that shows a short and a long
// outlook side by side. Every other bucket is exclusive.
type Buckets struct {
	// Overdue holds cards two to three days past due.
	Overdue []*store.ReviewRecord
	// Yesterday holds cards that became due yesterday.
	Yesterday []*store.ReviewRecord
	// Today holds cards due today, plus anything older than the overdue
	// window that was never cleared.
	Today []*store.ReviewRecord
	// Tomorrow holds cards due tomorrow.
	Tomorrow []*store.ReviewRecord
	// Within3Days holds cards due in two or three days.
	Within3Days []*store.ReviewRecord
	// Within5Days holds cards due in two to five days.
	Within5Days []*store.ReviewRecord
}

// DueNowCount returns the number of cards the learner should act on now:
// everything at or past its due day.
func (b *Buckets) DueNowCount() int {
	return len(b.Overdue) + len(b.Yesterday) + len(b.Today)
}

// Classify assigns each record to its due bucket relative to now.
//
// Day windows are half-open [start, next start) so a record lands in exactly
// one day regardless of its time of day. Records due further out than five
// days are not bucketed at all; records long past due (more than three days)
// fold into Today since they still need immediate attention.
func Classify(records []*store.ReviewRecord, now time.Time) *Buckets {
	buckets := &Buckets{
		Overdue:     []*store.ReviewRecord{},
		Yesterday:   []*store.ReviewRecord{},
		Today:       []*store.ReviewRecord{},
		Tomorrow:    []*store.ReviewRecord{},
		Within3Days: []*store.ReviewRecord{},
		Within5Days: []*store.ReviewRecord{},
	}

	todayStart := timezone.StartOfDay(now)
	dayStart := func(offset int) time.Time {
		return todayStart.AddDate(0, 0, offset)
	}

	for _, record := range records {
		dueAt := record.DueAt().In(now.Location())

		switch {
		case dueAt.Before(dayStart(-3)):
			buckets.Today = append(buckets.Today, record)
		case dueAt.Before(dayStart(-1)):
			buckets.Overdue = append(buckets.Overdue, record)
		case dueAt.Before(todayStart):
			buckets.Yesterday = append(buckets.Yesterday, record)
		case dueAt.Before(dayStart(1)):
			buckets.Today = append(buckets.Today, record)
		case dueAt.Before(dayStart(2)):
			buckets.Tomorrow = append(buckets.Tomorrow, record)
		case dueAt.Before(dayStart(4)):
			buckets.Within3Days = append(buckets.Within3Days, record)
			buckets.Within5Days = append(buckets.Within5Days, record)
		case dueAt.Before(dayStart(6)):
			buckets.Within5Days = append(buckets.Within5Days, record)
		}
	}

	return buckets
}
