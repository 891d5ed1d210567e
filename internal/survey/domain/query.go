package domain

import "strings"

// ListFilter narrows a record listing. Zero fields do not filter. Text
// fields match case-insensitive substrings; the enums match exactly.
type ListFilter struct {
	Title           string          `json:"title,omitempty"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel,omitempty" swaggertype:"string"`
	Location        string          `json:"location,omitempty"`
	SalaryBand      string          `json:"salaryBand,omitempty"`
	Tool            string          `json:"tool,omitempty"`
	OwnerProfile    Profile         `json:"ownerProfile,omitempty" swaggertype:"string"`
	FunctionalArea  string          `json:"functionalArea,omitempty"`
}

// Match applies the filters in a fixed order: title, experience level,
// location, salary band, tool, owner profile, functional area.
func (f ListFilter) Match(r Record) bool {
	if f.Title != "" && !containsFold(r.Title, f.Title) {
		return false
	}
	if f.ExperienceLevel != 0 && r.ExperienceLevel != f.ExperienceLevel {
		return false
	}
	if f.Location != "" && !containsFold(r.Location, f.Location) {
		return false
	}
	// Records without a salary band never match a salary filter
	if f.SalaryBand != "" && (r.SalaryBand == "" || !containsFold(r.SalaryBand, f.SalaryBand)) {
		return false
	}
	if f.Tool != "" && !anyContainsFold(r.Tools, f.Tool) {
		return false
	}
	if f.OwnerProfile != 0 && r.OwnerProfile != f.OwnerProfile {
		return false
	}
	if f.FunctionalArea != "" && !containsFold(r.FunctionalArea, f.FunctionalArea) {
		return false
	}
	return true
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func anyContainsFold(items []string, sub string) bool {
	for _, it := range items {
		if containsFold(it, sub) {
			return true
		}
	}
	return false
}

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paginate returns the slice [(page-1)*limit, page*limit) of items clamped to
// its bounds. page and limit must be positive. Pages past the end are empty;
// no intermediate product can overflow, whatever the inputs.
func Paginate[T any](items []T, page, limit int) ([]T, Pagination) {
	n := len(items)

	totalPages := 0
	if n > 0 {
		totalPages = (n-1)/limit + 1
	}

	start := n
	if page-1 < totalPages {
		start = (page - 1) * limit
	}
	end := start + min(limit, n-start)

	return items[start:end], Pagination{
		CurrentPage:     page,
		TotalPages:      totalPages,
		TotalItems:      n,
		ItemsPerPage:    limit,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// RecordPage is one page of a filtered listing together with the filters
// that produced it.
type RecordPage struct {
	Items      []RecordView `json:"data"`
	Pagination Pagination   `json:"pagination"`
	Filters    ListFilter   `json:"filters"`
}

// Statistics aggregates every record.
type Statistics struct {
	Total      int            `json:"total"`
	ByLevel    map[string]int `json:"byExperienceLevel"`
	ByLocation map[string]int `json:"byLocation"`
	ByTitle    map[string]int `json:"byTitle"`
	ToolUsage  map[string]int `json:"toolUsage"`
}

// Aggregate computes statistics over records.
func Aggregate(records []Record) Statistics {
	s := Statistics{
		Total:      len(records),
		ByLevel:    make(map[string]int),
		ByLocation: make(map[string]int),
		ByTitle:    make(map[string]int),
		ToolUsage:  make(map[string]int),
	}
	for _, r := range records {
		s.ByLevel[r.ExperienceLevel.String()]++
		s.ByLocation[r.Location]++
		s.ByTitle[r.Title]++
		for _, t := range r.Tools {
			s.ToolUsage[t]++
		}
	}
	return s
}
