package routes

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"collegesphere/mailer"
	"collegesphere/middlewares"
	"collegesphere/models"
	"collegesphere/utils"
)

// Deps carries everything the handlers need; main wires the real stores,
// tests wire mocks.
type Deps struct {
	Users     models.UserRepository
	Colleges  models.CollegeRepository
	Events    models.EventRepository
	Regs      models.RegistrationRepository
	Notify    *mailer.Notifier
	RDB       *redis.Client
	Inv       *utils.CacheInvalidator
	UploadDir string
}

type deps struct{ Deps }

func RegisterRoutes(server *gin.Engine, in Deps) {
	d := &deps{in}

	// global per-IP limiter
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// stricter for credential endpoints
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   5,
		IdleTTL: 10 * time.Minute,
	})

	api := server.Group("/api")

	// ----- auth -----
	auth := api.Group("/auth")
	auth.POST("/register",
		authLimiter.Middleware(func(c *gin.Context) string { return "register:" + c.ClientIP() }),
		d.register,
	)
	auth.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)
	authSelf := auth.Group("", middlewares.Authenticate)
	authSelf.PUT("/profile", d.updateProfile)
	authSelf.PUT("/password", d.updatePassword)

	// per-user limiter + daily quota for everything authenticated below
	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	perUser := userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64(middlewares.CtxUserID), 10)
	})
	dailyQuota := middlewares.Quota(d.RDB, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64(middlewares.CtxUserID)
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	})

	// ----- colleges -----
	college := api.Group("/college")
	college.GET("/all", d.listColleges)
	college.POST("/create",
		middlewares.Authenticate, perUser, dailyQuota,
		middlewares.RequireRoles(models.RoleAdmin),
		d.createCollege,
	)

	// ----- events -----
	event := api.Group("/event")
	event.GET("/AllEvents", d.listApprovedEvents)
	event.GET("/college/:collegeId", d.listCollegeEvents)

	eventAuth := event.Group("", middlewares.Authenticate, perUser, dailyQuota)
	eventAuth.POST("/create", middlewares.RequireRoles(models.RoleAdmin, models.RoleOrganizer), d.createEvent)
	eventAuth.GET("/my-events", middlewares.RequireRoles(models.RoleOrganizer), d.myEvents)
	eventAuth.PUT("/:eventId", middlewares.RequireRoles(models.RoleAdmin, models.RoleOrganizer), d.updateEvent)
	eventAuth.DELETE("/:eventId", middlewares.RequireRoles(models.RoleAdmin, models.RoleOrganizer), d.deleteEvent)

	// ----- registrations -----
	reg := api.Group("/registration", middlewares.Authenticate, perUser, dailyQuota)
	reg.POST("/register/:eventId", middlewares.RequireRoles(models.RoleStudent), d.registerForEvent)
	reg.GET("/my-registrations", middlewares.RequireRoles(models.RoleStudent), d.myRegistrations)
	reg.GET("/event/:eventId", middlewares.RequireRoles(models.RoleOrganizer, models.RoleAdmin), d.eventRegistrations)
	reg.DELETE("/cancel/:registrationId", middlewares.RequireRoles(models.RoleStudent), d.cancelRegistration)

	// ----- admin -----
	admin := api.Group("/admin", middlewares.Authenticate, perUser, dailyQuota, middlewares.RequireRoles(models.RoleAdmin))
	admin.GET("/stats", d.adminStats)
	admin.GET("/organizers/pending", d.pendingOrganizers)
	admin.GET("/organizers/approved", d.approvedOrganizers)
	admin.PUT("/organizers/:id/approve", d.approveOrganizer)
	admin.PUT("/organizers/:id/reject", d.rejectOrganizer)
	admin.GET("/events/pending", d.pendingEvents)
	admin.GET("/events/approved", d.approvedEvents)
	admin.PUT("/events/:id/approve", d.approveEvent)
	admin.DELETE("/events/:id/reject", d.rejectEvent)
	admin.DELETE("/events/:id", d.adminDeleteEvent)
}

/* ----- response envelope ----- */

func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func (d *deps) purgeEventCaches(c *gin.Context) {
	if d.Inv != nil {
		d.Inv.PurgeEventLists(c)
	}
}
