package domain

import "fmt"

// ExperienceLevel is the closed seniority scale a survey record reports.
type ExperienceLevel uint8

const (
	LevelJunior ExperienceLevel = iota + 1
	LevelMid
	LevelSenior
	LevelSpecialist
)

// ExperienceLevels lists every valid level from least to most senior.
var ExperienceLevels = []ExperienceLevel{LevelJunior, LevelMid, LevelSenior, LevelSpecialist}

var levelNames = map[ExperienceLevel]string{
	LevelJunior:     "junior",
	LevelMid:        "mid",
	LevelSenior:     "senior",
	LevelSpecialist: "specialist",
}

// ParseExperienceLevel maps the wire name onto a level. Names are exact.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	for l, name := range levelNames {
		if name == s {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

func (l ExperienceLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("ExperienceLevel(%d)", uint8(l))
}

func (l ExperienceLevel) Valid() bool {
	_, ok := levelNames[l]
	return ok
}

func (l ExperienceLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *ExperienceLevel) UnmarshalText(b []byte) error {
	parsed, err := ParseExperienceLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ExperienceLevelNames returns the wire names of every level, for messages.
func ExperienceLevelNames() []string {
	names := make([]string, len(ExperienceLevels))
	for i, l := range ExperienceLevels {
		names[i] = l.String()
	}
	return names
}
