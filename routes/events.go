package routes

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collegesphere/middlewares"
	"collegesphere/models"
)

func formTime(c *gin.Context, key string) (time.Time, error) {
	return time.Parse(time.RFC3339, c.PostForm(key))
}

func formIntPtr(c *gin.Context, key string) (*int, error) {
	raw := c.PostForm(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// POST /api/event/create (multipart; optional poster file)
func (d *deps) createEvent(c *gin.Context) {
	title := c.PostForm("title")
	collegeID := c.PostForm("collegeId")
	if title == "" || collegeID == "" {
		fail(c, http.StatusBadRequest, "Title and collegeId are required.")
		return
	}
	date, err := formTime(c, "date")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid event date.")
		return
	}
	deadline, err := formTime(c, "deadline")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid registration deadline.")
		return
	}
	if err := models.ValidateEventTiming(date, deadline); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := d.Colleges.GetByID(collegeID); err != nil {
		fail(c, http.StatusBadRequest, "Unknown college.")
		return
	}

	eventType := models.EventType(c.PostForm("eventType"))
	if eventType == "" {
		eventType = models.EventTypeSolo
	}
	minSize, err := formIntPtr(c, "minTeamSize")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid minTeamSize.")
		return
	}
	maxSize, err := formIntPtr(c, "maxTeamSize")
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid maxTeamSize.")
		return
	}

	event := models.Event{
		ID:          uuid.NewString(),
		Title:       title,
		Description: c.PostForm("description"),
		Date:        date,
		Venue:       c.PostForm("venue"),
		CollegeID:   collegeID,
		CreatedBy:   c.GetInt64(middlewares.CtxUserID),
		Deadline:    deadline,
		Category:    c.PostForm("category"),
		EventType:   eventType,
		MinTeamSize: minSize,
		MaxTeamSize: maxSize,
		// admin-authored events go live immediately; organizer events wait
		// for approval
		IsApproved: middlewares.CurrentRole(c) == models.RoleAdmin,
		CreatedAt:  time.Now().UTC(),
	}
	if err := models.ValidateTeamBounds(&event); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if file, err := c.FormFile("poster"); err == nil {
		name := uuid.NewString() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(d.UploadDir, name)); err != nil {
			fail(c, http.StatusInternalServerError, "Could not store poster.")
			return
		}
		event.Poster = "/uploads/" + name
	}

	if err := d.Events.Create(&event); err != nil {
		fail(c, http.StatusInternalServerError, "Could not create event.")
		return
	}

	d.purgeEventCaches(c)
	respond(c, http.StatusCreated, "Event created.", event)
}

// PUT /api/event/:eventId
func (d *deps) updateEvent(c *gin.Context) {
	event, err := d.Events.GetByID(c.Param("eventId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not fetch event.")
		return
	}

	role := middlewares.CurrentRole(c)
	if role == models.RoleOrganizer && event.CreatedBy != c.GetInt64(middlewares.CtxUserID) {
		fail(c, http.StatusForbidden, "You can only update your own events.")
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Date        *time.Time `json:"date"`
		Venue       *string    `json:"venue"`
		Deadline    *time.Time `json:"deadline"`
		Category    *string    `json:"category"`
		MinTeamSize *int       `json:"minTeamSize"`
		MaxTeamSize *int       `json:"maxTeamSize"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.Deadline != nil {
		event.Deadline = *req.Deadline
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.MinTeamSize != nil {
		event.MinTeamSize = req.MinTeamSize
	}
	if req.MaxTeamSize != nil {
		event.MaxTeamSize = req.MaxTeamSize
	}

	// the invariant holds over the merged state, not just the fields sent
	if err := models.ValidateEventTiming(event.Date, event.Deadline); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := models.ValidateTeamBounds(&event); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// organizer edits go back through review; admin edits keep the status
	if role == models.RoleOrganizer {
		event.IsApproved = false
	}

	if err := d.Events.Update(&event); err != nil {
		fail(c, http.StatusInternalServerError, "Could not update event.")
		return
	}

	d.purgeEventCaches(c)
	respond(c, http.StatusOK, "Event updated.", event)
}

// DELETE /api/event/:eventId
func (d *deps) deleteEvent(c *gin.Context) {
	event, err := d.Events.GetByID(c.Param("eventId"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not fetch event.")
		return
	}

	if middlewares.CurrentRole(c) == models.RoleOrganizer {
		if event.CreatedBy != c.GetInt64(middlewares.CtxUserID) {
			fail(c, http.StatusForbidden, "You can only delete your own events.")
			return
		}
		n, err := d.Regs.CountByEvent(event.ID)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Could not check registrations.")
			return
		}
		if n > 0 {
			fail(c, http.StatusConflict, "Event has registrations. Cancel them first.")
			return
		}
	}

	if err := d.Events.Delete(event.ID); err != nil {
		fail(c, http.StatusInternalServerError, "Could not delete event.")
		return
	}

	d.purgeEventCaches(c)
	respond(c, http.StatusOK, "Event deleted.", nil)
}

// GET /api/event/AllEvents
func (d *deps) listApprovedEvents(c *gin.Context) {
	events, err := d.Events.ListByApproval(true)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch events.")
		return
	}
	respond(c, http.StatusOK, "Events fetched.", events)
}

// GET /api/event/college/:collegeId
func (d *deps) listCollegeEvents(c *gin.Context) {
	events, err := d.Events.ListByCollege(c.Param("collegeId"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch events.")
		return
	}
	respond(c, http.StatusOK, "Events fetched.", events)
}

// GET /api/event/my-events
func (d *deps) myEvents(c *gin.Context) {
	events, err := d.Events.ListByCreator(c.GetInt64(middlewares.CtxUserID))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch events.")
		return
	}
	respond(c, http.StatusOK, "Events fetched.", events)
}
