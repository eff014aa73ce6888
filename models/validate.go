package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateEventTiming enforces that the registration deadline strictly
// precedes the event date.
func ValidateEventTiming(date, deadline time.Time) error {
	if !deadline.Before(date) {
		return fmt.Errorf("registration deadline must be before the event date")
	}
	return nil
}

// ValidateTeamBounds checks the team-size configuration on a team event.
// A team event needs at least one bound, and min must not exceed max when
// both are set. Solo events must not carry bounds.
func ValidateTeamBounds(e *Event) error {
	switch e.EventType {
	case EventTypeSolo:
		if e.MinTeamSize != nil || e.MaxTeamSize != nil {
			return fmt.Errorf("solo events cannot have team size bounds")
		}
	case EventTypeTeam:
		if e.MinTeamSize == nil && e.MaxTeamSize == nil {
			return fmt.Errorf("team events need a minimum or maximum team size")
		}
		if e.MinTeamSize != nil && *e.MinTeamSize < 1 {
			return fmt.Errorf("minimum team size must be at least 1")
		}
		if e.MinTeamSize != nil && e.MaxTeamSize != nil && *e.MinTeamSize > *e.MaxTeamSize {
			return fmt.Errorf("minimum team size cannot exceed maximum team size")
		}
	default:
		return fmt.Errorf("event type must be %q or %q", EventTypeSolo, EventTypeTeam)
	}
	return nil
}

// ValidateTeamPayload checks a team registration against the event's bounds.
// The first violation found aborts the registration.
func (e *Event) ValidateTeamPayload(teamName string, participants []Participant) error {
	if strings.TrimSpace(teamName) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(participants) == 0 {
		return fmt.Errorf("at least one participant is required")
	}
	if e.MinTeamSize != nil && len(participants) < *e.MinTeamSize {
		return fmt.Errorf("team needs at least %d participants", *e.MinTeamSize)
	}
	if e.MaxTeamSize != nil && len(participants) > *e.MaxTeamSize {
		return fmt.Errorf("team cannot exceed %d participants", *e.MaxTeamSize)
	}
	for i, p := range participants {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("participant %d is missing a name", i+1)
		}
		if !ValidEmail(p.Email) {
			return fmt.Errorf("participant %d has an invalid email", i+1)
		}
	}
	return nil
}
