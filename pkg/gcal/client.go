// Package gcal wraps the Google Calendar API for meeting scheduling.
package gcal

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client defines the calendar operations used by follow-up scheduling.
type Client interface {
	FindAvailableSlot(ctx context.Context, startFrom time.Time, duration time.Duration, daysAhead int) (time.Time, error)
	CreateMeeting(ctx context.Context, req MeetingRequest) (string, error)
}

// MeetingRequest describes a meeting to book.
type MeetingRequest struct {
	AttendeeEmail string
	CompanyName   string
	StartTime     time.Time
	Duration      time.Duration
}

// Business hours for slot search, in the calendar's local time.
const (
	businessStartHour = 9
	businessEndHour   = 17
)

type service struct {
	cal        *calendar.Service
	calendarID string
	timezone   string
}

// Option configures the service.
type Option func(*service)

// WithTimezone sets the timezone used for created events.
func WithTimezone(tz string) Option {
	return func(s *service) { s.timezone = tz }
}

// NewService builds a calendar client from a service-account credentials file
// with domain-wide delegation to the calendar owner.
func NewService(ctx context.Context, credentialsPath, calendarID string, opts ...Option) (Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, eris.Wrapf(err, "gcal: read credentials %s", credentialsPath)
	}

	cfg, err := google.JWTConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, eris.Wrap(err, "gcal: parse service account credentials")
	}
	cfg.Subject = calendarID

	cal, err := calendar.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, eris.Wrap(err, "gcal: create calendar service")
	}

	s := &service{
		cal:        cal,
		calendarID: calendarID,
		timezone:   "America/New_York",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// FindAvailableSlot returns the first free slot of the given duration within
// business hours (weekdays 9-17), searching in 30-minute steps up to daysAhead
// days out. Returns a zero time when nothing is free in the window.
func (s *service) FindAvailableSlot(ctx context.Context, startFrom time.Time, duration time.Duration, daysAhead int) (time.Time, error) {
	endDate := startFrom.AddDate(0, 0, daysAhead)

	resp, err := s.cal.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: startFrom.Format(time.RFC3339),
		TimeMax: endDate.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: s.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return time.Time{}, eris.Wrap(err, "gcal: freebusy query")
	}

	var busy []busyWindow
	if cal, ok := resp.Calendars[s.calendarID]; ok {
		for _, b := range cal.Busy {
			start, err1 := time.Parse(time.RFC3339, b.Start)
			end, err2 := time.Parse(time.RFC3339, b.End)
			if err1 != nil || err2 != nil {
				continue
			}
			busy = append(busy, busyWindow{start: start, end: end})
		}
	}

	return nextFreeSlot(startFrom, endDate, duration, busy), nil
}

type busyWindow struct {
	start, end time.Time
}

// nextFreeSlot walks candidate start times in 30-minute steps and returns the
// first one whose whole duration avoids every busy window. The zero time means
// no slot exists in the window. Candidates start at the first half-hour
// boundary at or after from, never before it.
func nextFreeSlot(from, until time.Time, duration time.Duration, busy []busyWindow) time.Time {
	current := from.Truncate(30 * time.Minute)
	if current.Before(from) {
		current = current.Add(30 * time.Minute)
	}
	switch {
	case current.Hour() < businessStartHour:
		current = atHour(current, businessStartHour)
	case current.Hour() >= businessEndHour:
		current = atHour(current.AddDate(0, 0, 1), businessStartHour)
	}

	for current.Before(until) {
		if wd := current.Weekday(); wd == time.Saturday || wd == time.Sunday {
			current = atHour(current.AddDate(0, 0, 1), businessStartHour)
			continue
		}
		if current.Hour() >= businessEndHour {
			current = atHour(current.AddDate(0, 0, 1), businessStartHour)
			continue
		}

		slotEnd := current.Add(duration)
		free := true
		for _, b := range busy {
			if slotEnd.After(b.start) && current.Before(b.end) {
				free = false
				break
			}
		}
		if free {
			return current
		}
		current = current.Add(30 * time.Minute)
	}

	return time.Time{}
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// CreateMeeting books a discovery call with a Meet link and invites the
// attendee. Returns the meeting link.
func (s *service) CreateMeeting(ctx context.Context, req MeetingRequest) (string, error) {
	if req.Duration == 0 {
		req.Duration = 30 * time.Minute
	}
	end := req.StartTime.Add(req.Duration)

	event := &calendar.Event{
		Summary: fmt.Sprintf("Nodari AI x %s - Discovery Call", req.CompanyName),
		Description: fmt.Sprintf(`Discovery call to discuss AI solutions for %s.

Agenda:
- Understand your current challenges
- Discuss potential AI solutions
- Outline next steps

Looking forward to speaking with you!

- Nodari AI Team`, req.CompanyName),
		Start: &calendar.EventDateTime{
			DateTime: req.StartTime.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.timezone,
		},
		Attendees: []*calendar.EventAttendee{
			{Email: req.AttendeeEmail},
			{Email: s.calendarID},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("nodari-%s-%d", req.CompanyName, req.StartTime.Unix()),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 60},
				{Method: "popup", Minutes: 15},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := s.cal.Events.Insert(s.calendarID, event).
		ConferenceDataVersion(1).
		SendUpdates("all").
		Context(ctx).
		Do()
	if err != nil {
		return "", eris.Wrap(err, "gcal: insert event")
	}

	if created.HangoutLink != "" {
		return created.HangoutLink, nil
	}
	return created.HtmlLink, nil
}
