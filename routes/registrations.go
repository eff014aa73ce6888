package routes

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collegesphere/middlewares"
	"collegesphere/models"
)

// POST /api/registration/register/:eventId
func (d *deps) registerForEvent(c *gin.Context) {
	userID := c.GetInt64(middlewares.CtxUserID)

	eventID := c.Param("eventId")
	if _, err := uuid.Parse(eventID); err != nil {
		fail(c, http.StatusBadRequest, "Malformed event id.")
		return
	}

	event, err := d.Events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not fetch event.")
		return
	}

	if time.Now().After(event.Deadline) {
		fail(c, http.StatusBadRequest, "Registration deadline has passed.")
		return
	}

	// advisory pre-check; the unique constraint below is the real guard
	if exists, err := d.Regs.Exists(userID, eventID); err != nil {
		fail(c, http.StatusInternalServerError, "Could not check registration.")
		return
	} else if exists {
		fail(c, http.StatusBadRequest, "Already registered for this event.")
		return
	}

	var req struct {
		TeamName     string               `json:"teamName"`
		Participants []models.Participant `json:"participants"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}

	reg := models.Registration{UserID: userID, EventID: eventID}
	switch event.EventType {
	case models.EventTypeTeam:
		if err := event.ValidateTeamPayload(req.TeamName, req.Participants); err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		reg.IsTeam = true
		reg.TeamName = strings.TrimSpace(req.TeamName)
		reg.Participants = req.Participants
	default:
		if req.TeamName != "" || len(req.Participants) > 0 {
			fail(c, http.StatusBadRequest, "Solo events do not accept team fields.")
			return
		}
	}

	if err := d.Regs.Create(&reg); err != nil {
		// a concurrent duplicate surfaces here as the constraint violation;
		// callers see the same message as the pre-check
		if errors.Is(err, models.ErrAlreadyRegistered) {
			fail(c, http.StatusBadRequest, "Already registered for this event.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not register.")
		return
	}

	if d.Notify != nil {
		if user, err := d.Users.GetByID(userID); err == nil {
			college, _ := d.Colleges.GetByID(event.CollegeID)
			go d.Notify.RegistrationConfirmed(user, event, college, reg)
		}
	}

	respond(c, http.StatusCreated, "Registered successfully.", reg)
}

// DELETE /api/registration/cancel/:registrationId
func (d *deps) cancelRegistration(c *gin.Context) {
	regID, err := strconv.ParseInt(c.Param("registrationId"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Malformed registration id.")
		return
	}

	// ownership is part of the delete filter, so a foreign id is
	// indistinguishable from a missing one
	if err := d.Regs.DeleteOwned(regID, c.GetInt64(middlewares.CtxUserID)); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Registration not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not cancel registration.")
		return
	}
	respond(c, http.StatusOK, "Registration cancelled.", nil)
}

type registrationView struct {
	models.Registration
	Event   *models.Event   `json:"event"`
	College *models.College `json:"college,omitempty"`
	User    *models.User    `json:"user,omitempty"`
}

// GET /api/registration/my-registrations
func (d *deps) myRegistrations(c *gin.Context) {
	regs, err := d.Regs.ListByUser(c.GetInt64(middlewares.CtxUserID))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch registrations.")
		return
	}

	out := make([]registrationView, 0, len(regs))
	for _, reg := range regs {
		view := registrationView{Registration: reg}
		// an admin-deleted event leaves the registration behind; it is
		// returned with a null event so the owner can still cancel it
		if event, err := d.Events.GetByID(reg.EventID); err == nil {
			view.Event = &event
			if college, err := d.Colleges.GetByID(event.CollegeID); err == nil {
				view.College = &college
			}
		}
		out = append(out, view)
	}
	respond(c, http.StatusOK, "Registrations fetched.", out)
}

// GET /api/registration/event/:eventId
func (d *deps) eventRegistrations(c *gin.Context) {
	eventID := c.Param("eventId")
	event, err := d.Events.GetByID(eventID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not fetch event.")
		return
	}
	if middlewares.CurrentRole(c) == models.RoleOrganizer && event.CreatedBy != c.GetInt64(middlewares.CtxUserID) {
		fail(c, http.StatusForbidden, "You can only view registrations for your own events.")
		return
	}

	regs, err := d.Regs.ListByEvent(eventID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch registrations.")
		return
	}

	out := make([]registrationView, 0, len(regs))
	for _, reg := range regs {
		view := registrationView{Registration: reg, Event: &event}
		if user, err := d.Users.GetByID(reg.UserID); err == nil {
			view.User = &user
			if user.CollegeID != "" {
				if college, err := d.Colleges.GetByID(user.CollegeID); err == nil {
					view.College = &college
				}
			}
		}
		out = append(out, view)
	}
	respond(c, http.StatusOK, "Registrations fetched.", out)
}
