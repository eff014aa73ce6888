package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"collegesphere/models"
)

// GET /api/admin/stats
func (d *deps) adminStats(c *gin.Context) {
	students, err := d.Users.CountByRole(models.RoleStudent)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}
	organizers, err := d.Users.CountByRole(models.RoleOrganizer)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}
	pendingOrganizers, err := d.Users.ListOrganizers(false)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}
	approvedEvents, err := d.Events.CountByApproval(true)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}
	pendingEvents, err := d.Events.CountByApproval(false)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}
	colleges, err := d.Colleges.Count()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}
	registrations, err := d.Regs.Count()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not compute stats.")
		return
	}

	respond(c, http.StatusOK, "Stats computed.", gin.H{
		"students":          students,
		"organizers":        organizers,
		"pendingOrganizers": len(pendingOrganizers),
		"colleges":          colleges,
		"approvedEvents":    approvedEvents,
		"pendingEvents":     pendingEvents,
		"registrations":     registrations,
	})
}

/* ----- organizer approval ----- */

// GET /api/admin/organizers/pending
func (d *deps) pendingOrganizers(c *gin.Context) {
	organizers, err := d.Users.ListOrganizers(false)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch organizers.")
		return
	}
	respond(c, http.StatusOK, "Organizers fetched.", organizers)
}

// GET /api/admin/organizers/approved
func (d *deps) approvedOrganizers(c *gin.Context) {
	organizers, err := d.Users.ListOrganizers(true)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch organizers.")
		return
	}
	respond(c, http.StatusOK, "Organizers fetched.", organizers)
}

func (d *deps) setOrganizerApproval(c *gin.Context, approved bool) (models.User, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "Malformed organizer id.")
		return models.User{}, false
	}
	user, err := d.Users.SetApproval(id, approved)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Organizer not found.")
			return models.User{}, false
		}
		fail(c, http.StatusInternalServerError, "Could not update organizer.")
		return models.User{}, false
	}
	return user, true
}

// PUT /api/admin/organizers/:id/approve
func (d *deps) approveOrganizer(c *gin.Context) {
	user, ok := d.setOrganizerApproval(c, true)
	if !ok {
		return
	}
	if d.Notify != nil {
		go d.Notify.OrganizerApproved(user)
	}
	respond(c, http.StatusOK, "Organizer approved.", user)
}

// PUT /api/admin/organizers/:id/reject
// Reject flips the flag back without deleting the account, and sends no mail.
func (d *deps) rejectOrganizer(c *gin.Context) {
	user, ok := d.setOrganizerApproval(c, false)
	if !ok {
		return
	}
	respond(c, http.StatusOK, "Organizer rejected.", user)
}

/* ----- event approval ----- */

// GET /api/admin/events/pending
func (d *deps) pendingEvents(c *gin.Context) {
	events, err := d.Events.ListByApproval(false)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch events.")
		return
	}
	respond(c, http.StatusOK, "Events fetched.", events)
}

// GET /api/admin/events/approved
func (d *deps) approvedEvents(c *gin.Context) {
	events, err := d.Events.ListByApproval(true)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch events.")
		return
	}
	respond(c, http.StatusOK, "Events fetched.", events)
}

// PUT /api/admin/events/:id/approve
func (d *deps) approveEvent(c *gin.Context) {
	id := c.Param("id")
	if err := d.Events.SetApproval(id, true); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not approve event.")
		return
	}

	event, err := d.Events.GetByID(id)
	if err == nil && d.Notify != nil {
		if creator, err := d.Users.GetByID(event.CreatedBy); err == nil {
			go d.Notify.EventApproved(creator, event)
		}
	}

	d.purgeEventCaches(c)
	respond(c, http.StatusOK, "Event approved.", event)
}

// DELETE /api/admin/events/:id/reject
// Reject is destructive: the event is removed outright, not flagged.
// Registrations are not cascaded; orphans stay cancellable by their owners.
func (d *deps) rejectEvent(c *gin.Context) {
	if err := d.Events.Delete(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not reject event.")
		return
	}
	d.purgeEventCaches(c)
	respond(c, http.StatusOK, "Event rejected and removed.", nil)
}

// DELETE /api/admin/events/:id
// Admin delete skips the zero-registrations guard organizers are held to.
func (d *deps) adminDeleteEvent(c *gin.Context) {
	if err := d.Events.Delete(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "Event not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not delete event.")
		return
	}
	d.purgeEventCaches(c)
	respond(c, http.StatusOK, "Event deleted.", nil)
}
