package domain

import (
	"strings"
	"time"
)

// Record is one account's survey answer. An owner has at most one.
type Record struct {
	ID              int64
	OwnerID         int64
	OwnerProfile    Profile // snapshot taken at creation
	Title           string
	ExperienceLevel ExperienceLevel
	SalaryBand      string // optional
	Tools           []string
	Location        string
	FunctionalArea  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecordPatch carries the fields supplied to an update. Nil means "leave
// unchanged".
type RecordPatch struct {
	Title           *string
	ExperienceLevel *ExperienceLevel
	SalaryBand      *string
	Tools           *[]string
	Location        *string
	FunctionalArea  *string
}

// Empty reports whether the patch changes nothing.
func (p RecordPatch) Empty() bool {
	return p.Title == nil && p.ExperienceLevel == nil && p.SalaryBand == nil &&
		p.Tools == nil && p.Location == nil && p.FunctionalArea == nil
}

// Apply returns r with the patch applied and UpdatedAt set to now.
func (p RecordPatch) Apply(r Record, now time.Time) Record {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.ExperienceLevel != nil {
		r.ExperienceLevel = *p.ExperienceLevel
	}
	if p.SalaryBand != nil {
		r.SalaryBand = *p.SalaryBand
	}
	if p.Tools != nil {
		r.Tools = NormalizeTools(*p.Tools)
	}
	if p.Location != nil {
		r.Location = *p.Location
	}
	if p.FunctionalArea != nil {
		r.FunctionalArea = *p.FunctionalArea
	}
	r.UpdatedAt = now
	return r
}

// NormalizeTools trims every entry, drops blanks and removes duplicates while
// keeping the first occurrence. The result is never nil.
func NormalizeTools(tools []string) []string {
	out := make([]string, 0, len(tools))
	seen := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// View projects the record for a reader. Only privileged readers see who
// owns it.
func (r Record) View(privileged bool) RecordView {
	v := RecordView{
		ID:              r.ID,
		OwnerProfile:    r.OwnerProfile,
		Title:           r.Title,
		ExperienceLevel: r.ExperienceLevel,
		SalaryBand:      r.SalaryBand,
		Tools:           append([]string{}, r.Tools...),
		Location:        r.Location,
		FunctionalArea:  r.FunctionalArea,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if privileged {
		owner := r.OwnerID
		v.OwnerID = &owner
	}
	return v
}

type RecordView struct {
	ID              int64           `json:"id"`
	OwnerID         *int64          `json:"userId,omitempty"`
	OwnerProfile    Profile         `json:"ownerProfile" swaggertype:"string" enums:"student,qa_professional,manager,recruiter,administrator"`
	Title           string          `json:"title"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel" swaggertype:"string" enums:"junior,mid,senior,specialist"`
	SalaryBand      string          `json:"salaryBand,omitempty"`
	Tools           []string        `json:"tools"`
	Location        string          `json:"location"`
	FunctionalArea  string          `json:"functionalArea"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
