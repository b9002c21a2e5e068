package model

import "time"

// Person is an entry in the people directory
type Person struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Bio               string   `json:"bio" yaml:"bio"`
	Location          string   `json:"location" yaml:"location"`
	Avatar            string   `json:"avatar,omitempty" yaml:"avatar"`
	SkillsToTeach     []string `json:"skillsToTeach" yaml:"skills_to_teach"`
	SkillsToLearn     []string `json:"skillsToLearn" yaml:"skills_to_learn"`
	Interests         []string `json:"interests" yaml:"interests"`
	Availability      []string `json:"availability" yaml:"availability"`
	MutualConnections int      `json:"mutualConnections" yaml:"mutual_connections"`
	IsOnline          bool     `json:"isOnline" yaml:"is_online"`
}

// SearchFields implements view.Searchable
func (p Person) SearchFields() (string, string, []string) {
	tags := make([]string, 0, len(p.SkillsToTeach)+len(p.SkillsToLearn)+len(p.Interests))
	tags = append(tags, p.SkillsToTeach...)
	tags = append(tags, p.SkillsToLearn...)
	tags = append(tags, p.Interests...)
	return p.Name, p.Bio, tags
}

// MatchProfile returns the attributes the match score compares
func (p Person) MatchProfile() MatchProfile {
	return MatchProfile{
		SkillsToTeach: p.SkillsToTeach,
		SkillsToLearn: p.SkillsToLearn,
		Interests:     p.Interests,
		Location:      p.Location,
		Availability:  p.Availability,
	}
}

// MatchProfile is the slice of a user that match scoring looks at
type MatchProfile struct {
	SkillsToTeach []string `json:"skillsToTeach"`
	SkillsToLearn []string `json:"skillsToLearn"`
	Interests     []string `json:"interests"`
	Location      string   `json:"location"`
	Availability  []string `json:"availability"`
}

// PersonMatch is a directory entry annotated with its match score
type PersonMatch struct {
	Person
	MatchScore  int  `json:"matchScore"`
	IsConnected bool `json:"isConnected"`
}

// SearchFields implements view.Searchable
func (m PersonMatch) SearchFields() (string, string, []string) {
	return m.Person.SearchFields()
}

// Connection is a person the user has connected with
type Connection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar,omitempty"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// IntentKind names where the UI should navigate after an action
type IntentKind string

const (
	IntentMessage  IntentKind = "message"
	IntentSchedule IntentKind = "schedule"
	IntentProfile  IntentKind = "profile"
)

// IsValid returns true if the intent kind is known
func (k IntentKind) IsValid() bool {
	switch k {
	case IntentMessage, IntentSchedule, IntentProfile:
		return true
	default:
		return false
	}
}

// Intent is a navigation request handed back to the UI shell.
// Producing an intent never mutates any collection.
type Intent struct {
	Kind     IntentKind `json:"kind"`
	PersonID string     `json:"personId"`
}
