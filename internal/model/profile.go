package model

import (
	"strings"
	"time"
)

// Profile is the single user profile record, overwritten wholesale on save
type Profile struct {
	Name         string    `json:"name"`
	Bio          string    `json:"bio"`
	Location     string    `json:"location"`
	Website      string    `json:"website,omitempty"`
	LinkedIn     string    `json:"linkedin,omitempty"`
	GitHub       string    `json:"github,omitempty"`
	About        string    `json:"about"`
	Avatar       string    `json:"avatar,omitempty"` // data: reference
	Interests    []string  `json:"interests"`
	Availability []string  `json:"availability"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile constraints
const (
	MaxProfileNameLength  = 80
	MaxProfileBioLength   = 160
	MaxProfileAboutLength = 2000
)

// UpdateProfileRequest carries every editable profile field
type UpdateProfileRequest struct {
	Name         string   `json:"name"`
	Bio          string   `json:"bio"`
	Location     string   `json:"location"`
	Website      string   `json:"website,omitempty"`
	LinkedIn     string   `json:"linkedin,omitempty"`
	GitHub       string   `json:"github,omitempty"`
	About        string   `json:"about"`
	Interests    []string `json:"interests,omitempty"`
	Availability []string `json:"availability,omitempty"`
}

// Validate checks if the profile update is valid
func (r *UpdateProfileRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs.Add("name", "Name is required")
	} else if len([]rune(name)) > MaxProfileNameLength {
		errs.Add("name", "Name must be 80 characters or less")
	}
	if len([]rune(r.Bio)) > MaxProfileBioLength {
		errs.Add("bio", "Bio must be 160 characters or less")
	}
	if len([]rune(r.About)) > MaxProfileAboutLength {
		errs.Add("about", "About must be 2000 characters or less")
	}

	return errs.OrNil()
}

// SkillLevel is a self-assessed proficiency
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

// IsValid returns true if the level is known
func (l SkillLevel) IsValid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillExpert:
		return true
	default:
		return false
	}
}

// SkillKind selects the teach or learn skill collection
type SkillKind string

const (
	SkillsToTeach SkillKind = "teach"
	SkillsToLearn SkillKind = "learn"
)

// IsValid returns true if the kind is known
func (k SkillKind) IsValid() bool {
	return k == SkillsToTeach || k == SkillsToLearn
}

// Skill is a named skill with a proficiency level, unique by name within its collection
type Skill struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// AddSkillRequest represents a request to add a skill
type AddSkillRequest struct {
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Validate checks if the skill request is valid
func (r *AddSkillRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs.Add("name", "Skill name is required")
	}
	if !r.Level.IsValid() {
		errs.Add("level", "Choose a proficiency level")
	}
	return errs.OrNil()
}

// SkillNames returns the names of skills
func SkillNames(skills []Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}
