package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"collegesphere/middlewares"
	"collegesphere/models"
	"collegesphere/utils"
)

// POST /api/auth/register
func (d *deps) register(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required"`
		Password  string `json:"password" binding:"required,min=6"`
		Role      string `json:"role"`
		CollegeID string `json:"collegeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}
	if !models.ValidEmail(req.Email) {
		fail(c, http.StatusBadRequest, "Invalid email address.")
		return
	}

	// student unless organizer is explicitly requested; admin accounts are
	// never self-registered
	role := models.RoleStudent
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			fail(c, http.StatusBadRequest, "Unknown role.")
			return
		}
		if parsed == models.RoleAdmin {
			fail(c, http.StatusForbidden, "Admin accounts cannot be self-registered.")
			return
		}
		role = parsed
	}

	if req.CollegeID != "" {
		if _, err := d.Colleges.GetByID(req.CollegeID); err != nil {
			fail(c, http.StatusBadRequest, "Unknown college.")
			return
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not hash password.")
		return
	}

	u := models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hashed,
		Role:       role,
		IsApproved: role != models.RoleOrganizer, // organizers await admin approval
		CollegeID:  req.CollegeID,
	}
	if err := d.Users.Create(&u); err != nil {
		if errors.Is(err, models.ErrEmailExists) {
			fail(c, http.StatusConflict, "Email already registered.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not save user.")
		return
	}

	respond(c, http.StatusCreated, "User registered successfully.", u)
}

// POST /api/auth/login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}

	user, err := d.Users.GetByEmail(req.Email)
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		fail(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not issue token.")
		return
	}
	respond(c, http.StatusOK, "Login successful.", gin.H{"token": token, "user": user})
}

// PUT /api/auth/profile
func (d *deps) updateProfile(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		CollegeID string `json:"collegeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}
	if req.CollegeID != "" {
		if _, err := d.Colleges.GetByID(req.CollegeID); err != nil {
			fail(c, http.StatusBadRequest, "Unknown college.")
			return
		}
	}

	user, err := d.Users.UpdateProfile(c.GetInt64(middlewares.CtxUserID), req.Name, req.CollegeID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fail(c, http.StatusNotFound, "User not found.")
			return
		}
		fail(c, http.StatusInternalServerError, "Could not update profile.")
		return
	}
	respond(c, http.StatusOK, "Profile updated.", user)
}

// PUT /api/auth/password
func (d *deps) updatePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Could not parse request data.")
		return
	}

	userID := c.GetInt64(middlewares.CtxUserID)
	user, err := d.Users.GetByID(userID)
	if err != nil {
		fail(c, http.StatusNotFound, "User not found.")
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		fail(c, http.StatusUnauthorized, "Current password is incorrect.")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Could not hash password.")
		return
	}
	if err := d.Users.UpdatePassword(userID, hashed); err != nil {
		fail(c, http.StatusInternalServerError, "Could not update password.")
		return
	}
	respond(c, http.StatusOK, "Password updated.", nil)
}
