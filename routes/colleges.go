package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collegesphere/models"
)

// POST /api/college/create
func (d *deps) createCollege(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Location    string `json:"location"`
		EmailDomain string `json:"emailDomain"`
		IsVerified  bool   `json:"isVerified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}

	college := models.College{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Location:    req.Location,
		EmailDomain: req.EmailDomain,
		IsVerified:  req.IsVerified,
	}
	if err := d.Colleges.Create(&college); err != nil {
		if errors.Is(err, models.ErrCollegeExists) {
			fail(c, http.StatusConflict, "A college with that name already exists.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not create college.")
		return
	}

	if d.Inv != nil {
		d.Inv.PurgeColleges(c)
	}
	respond(c, http.StatusCreated, "College created.", college)
}

// GET /api/college/all
func (d *deps) listColleges(c *gin.Context) {
	colleges, err := d.Colleges.GetAll()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not fetch colleges.")
		return
	}
	respond(c, http.StatusOK, "Colleges fetched.", colleges)
}
