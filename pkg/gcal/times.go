package gcal

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var timeParser = func() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}()

// ParseMeetingTime interprets a natural-language meeting time ("Thursday at
// 10am", "tomorrow afternoon") relative to now. Times that land in the past
// roll forward: same-day slips move to tomorrow, older ones to next week.
// Returns false when the text has no recognizable time.
func ParseMeetingTime(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}

	r, err := timeParser.Parse(text, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}

	parsed := r.Time
	if parsed.Before(now) {
		if sameDay(parsed, now) {
			parsed = parsed.AddDate(0, 0, 1)
		} else if parsed.Before(now.AddDate(0, 0, -1)) {
			parsed = parsed.AddDate(0, 0, 7)
		}
	}
	return parsed, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
