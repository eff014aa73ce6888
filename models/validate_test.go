package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intp(n int) *int { return &n }

func TestParseRole(t *testing.T) {
	for _, s := range []string{"student", "organizer", "admin"} {
		role, ok := ParseRole(s)
		assert.True(t, ok)
		assert.EqualValues(t, s, role)
	}
	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestValidateEventTiming(t *testing.T) {
	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	assert.Error(t, ValidateEventTiming(date, date), "deadline equal to date is rejected")
	assert.Error(t, ValidateEventTiming(date, date.Add(time.Hour)))
	assert.NoError(t, ValidateEventTiming(date, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidateTeamBounds(t *testing.T) {
	cases := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{"solo without bounds", Event{EventType: EventTypeSolo}, false},
		{"solo with bounds", Event{EventType: EventTypeSolo, MinTeamSize: intp(2)}, true},
		{"team without bounds", Event{EventType: EventTypeTeam}, true},
		{"team with min only", Event{EventType: EventTypeTeam, MinTeamSize: intp(2)}, false},
		{"team with max only", Event{EventType: EventTypeTeam, MaxTeamSize: intp(4)}, false},
		{"team min above max", Event{EventType: EventTypeTeam, MinTeamSize: intp(5), MaxTeamSize: intp(2)}, true},
		{"team zero min", Event{EventType: EventTypeTeam, MinTeamSize: intp(0)}, true},
		{"unknown type", Event{EventType: "duo"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTeamBounds(&tc.event)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTeamPayload(t *testing.T) {
	event := Event{EventType: EventTypeTeam, MinTeamSize: intp(2), MaxTeamSize: intp(4)}
	three := []Participant{
		{Name: "A", Email: "a@x.io"},
		{Name: "B", Email: "b@x.io"},
		{Name: "C", Email: "c@x.io"},
	}

	assert.NoError(t, event.ValidateTeamPayload("Rockets", three))
	assert.Error(t, event.ValidateTeamPayload("", three), "team name required")
	assert.Error(t, event.ValidateTeamPayload("   ", three), "blank team name")
	assert.Error(t, event.ValidateTeamPayload("Rockets", nil), "participants required")
	assert.Error(t, event.ValidateTeamPayload("Rockets", three[:1]), "below minimum")
	assert.Error(t, event.ValidateTeamPayload("Rockets", append(append([]Participant{}, three...),
		Participant{Name: "D", Email: "d@x.io"},
		Participant{Name: "E", Email: "e@x.io"})), "above maximum")

	bad := append([]Participant{}, three...)
	bad[1].Name = "  "
	assert.Error(t, event.ValidateTeamPayload("Rockets", bad), "blank participant name")

	bad = append([]Participant{}, three...)
	bad[2].Email = "missing-at-sign"
	assert.Error(t, event.ValidateTeamPayload("Rockets", bad), "invalid participant email")
}

func TestValidateTeamPayload_OnlySetBoundsChecked(t *testing.T) {
	event := Event{EventType: EventTypeTeam, MinTeamSize: intp(2)}
	many := make([]Participant, 10)
	for i := range many {
		many[i] = Participant{Name: "P", Email: "p@x.io"}
	}
	assert.NoError(t, event.ValidateTeamPayload("Big Team", many), "no max means no upper bound")
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.True(t, ValidEmail("first.last@sub.domain.edu"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.io"))
	assert.False(t, ValidEmail("@c.io"))
	assert.False(t, ValidEmail(""))
}
