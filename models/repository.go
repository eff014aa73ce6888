package models

import "time"

type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a wire string onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type EventType string

const (
	EventTypeSolo EventType = "solo"
	EventTypeTeam EventType = "team"
)

type User struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       Role      `json:"role"`
	IsApproved bool      `json:"isApproved"`
	CollegeID  string    `json:"collegeId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type College struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Location    string `bson:"location" json:"location"`
	EmailDomain string `bson:"email_domain" json:"emailDomain"`
	IsVerified  bool   `bson:"is_verified" json:"isVerified"`
}

type Event struct {
	ID          string    `bson:"id" json:"id"` // UUID, shared key with SQL registrations(event_id)
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Date        time.Time `bson:"date" json:"date"`
	Venue       string    `bson:"venue" json:"venue"`
	CollegeID   string    `bson:"college_id" json:"collegeId"`
	CreatedBy   int64     `bson:"created_by" json:"createdBy"` // SQL users.id
	Deadline    time.Time `bson:"deadline" json:"deadline"`
	Category    string    `bson:"category" json:"category"`
	Poster      string    `bson:"poster,omitempty" json:"poster,omitempty"`
	EventType   EventType `bson:"event_type" json:"eventType"`
	MinTeamSize *int      `bson:"min_team_size,omitempty" json:"minTeamSize,omitempty"`
	MaxTeamSize *int      `bson:"max_team_size,omitempty" json:"maxTeamSize,omitempty"`
	IsApproved  bool      `bson:"is_approved" json:"isApproved"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

type Participant struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Registration struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userId"`
	EventID      string        `json:"eventId"`
	IsTeam       bool          `json:"isTeamRegistration"`
	TeamName     string        `json:"teamName,omitempty"`
	Participants []Participant `json:"participants,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ===== Users =====
type UserRepository interface {
	Create(u *User) error
	GetByEmail(email string) (User, error)
	GetByID(id int64) (User, error)
	UpdateProfile(id int64, name, collegeID string) (User, error)
	UpdatePassword(id int64, passwordHash string) error
	SetApproval(id int64, approved bool) (User, error)
	ListOrganizers(approved bool) ([]User, error)
	CountByRole(role Role) (int64, error)
}

// ===== Colleges =====
type CollegeRepository interface {
	Create(c *College) error
	GetByID(id string) (College, error)
	GetAll() ([]College, error)
	Count() (int64, error)
}

// ===== Events =====
type EventRepository interface {
	Create(e *Event) error
	GetByID(id string) (Event, error)
	Update(e *Event) error
	Delete(id string) error
	SetApproval(id string, approved bool) error
	ListByApproval(approved bool) ([]Event, error)
	ListByCollege(collegeID string) ([]Event, error) // approved only
	ListByCreator(userID int64) ([]Event, error)
	CountByApproval(approved bool) (int64, error)
}

// ===== Registrations =====
type RegistrationRepository interface {
	Create(r *Registration) error
	Exists(userID int64, eventID string) (bool, error)
	DeleteOwned(id, userID int64) error
	ListByUser(userID int64) ([]Registration, error)
	ListByEvent(eventID string) ([]Registration, error)
	CountByEvent(eventID string) (int64, error)
	Count() (int64, error)
}
