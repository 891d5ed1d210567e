package surveysdk

import "time"

// Profiles accepted by the service.
const (
	ProfileStudent        = "student"
	ProfileQAProfessional = "qa_professional"
	ProfileManager        = "manager"
	ProfileRecruiter      = "recruiter"
	ProfileAdministrator  = "administrator"
)

// Experience levels accepted by the service.
const (
	LevelJunior     = "junior"
	LevelMid        = "mid"
	LevelSenior     = "senior"
	LevelSpecialist = "specialist"
)

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	NationalID string `json:"nationalId"`
	Password   string `json:"password"`
	Profile    string `json:"profile"`
}

type Account struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	NationalID string    `json:"nationalId"`
	Profile    string    `json:"profile"`
	CreatedAt  time.Time `json:"createdAt"`
	Blocked    bool      `json:"blocked"`
}

type Principal struct {
	AccountID int64  `json:"userId"`
	Email     string `json:"email"`
	Profile   string `json:"profile"`
}

type LoginResponse struct {
	Message   string  `json:"message"`
	Token     string  `json:"token"`
	TokenType string  `json:"tokenType"`
	ExpiresAt string  `json:"expiresAt"`
	User      Account `json:"user"`
}

type RecordInput struct {
	Title           string   `json:"title"`
	ExperienceLevel string   `json:"experienceLevel"`
	SalaryBand      string   `json:"salaryBand,omitempty"`
	Tools           []string `json:"tools,omitempty"`
	Location        string   `json:"location"`
	FunctionalArea  string   `json:"functionalArea"`
}

// RecordPatch holds the fields to change; nil fields are left alone.
type RecordPatch struct {
	Title           *string   `json:"title,omitempty"`
	ExperienceLevel *string   `json:"experienceLevel,omitempty"`
	SalaryBand      *string   `json:"salaryBand,omitempty"`
	Tools           *[]string `json:"tools,omitempty"`
	Location        *string   `json:"location,omitempty"`
	FunctionalArea  *string   `json:"functionalArea,omitempty"`
}

// Record is a survey record. OwnerID is only set for the owner's own
// listing and for privileged callers.
type Record struct {
	ID              int64     `json:"id"`
	OwnerID         *int64    `json:"userId,omitempty"`
	OwnerProfile    string    `json:"ownerProfile"`
	Title           string    `json:"title"`
	ExperienceLevel string    `json:"experienceLevel"`
	SalaryBand      string    `json:"salaryBand,omitempty"`
	Tools           []string  `json:"tools"`
	Location        string    `json:"location"`
	FunctionalArea  string    `json:"functionalArea"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListOptions filters and pages a record listing. Zero values are omitted.
type ListOptions struct {
	Title           string
	ExperienceLevel string
	Location        string
	SalaryBand      string
	Tool            string
	OwnerProfile    string
	FunctionalArea  string
	Page            int
	Limit           int
}

type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

type RecordPage struct {
	Data       []Record          `json:"data"`
	Pagination Pagination        `json:"pagination"`
	Filters    map[string]string `json:"filters"`
}

type Statistics struct {
	Total      int            `json:"total"`
	ByLevel    map[string]int `json:"byExperienceLevel"`
	ByLocation map[string]int `json:"byLocation"`
	ByTitle    map[string]int `json:"byTitle"`
	ToolUsage  map[string]int `json:"toolUsage"`
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

type accountEnvelope struct {
	User Account `json:"user"`
}

type recordEnvelope struct {
	Data Record `json:"data"`
}
