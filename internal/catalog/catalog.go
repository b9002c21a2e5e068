// Package catalog provides the static data shipped with the app: the
// predefined communities and the people directory.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/johndoniego/erudite/internal/model"
)

//go:embed communities.yaml people.yaml
var files embed.FS

// Catalog is read-only after Load
type Catalog struct {
	communities []model.Community
	people      []model.Person
	communityIx map[string]int
	personIx    map[string]int
}

type communitiesFile struct {
	Communities []model.Community `yaml:"communities"`
}

type peopleFile struct {
	People []model.Person `yaml:"people"`
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	communities, err := files.ReadFile("communities.yaml")
	if err != nil {
		return nil, fmt.Errorf("read communities: %w", err)
	}
	people, err := files.ReadFile("people.yaml")
	if err != nil {
		return nil, fmt.Errorf("read people: %w", err)
	}
	return Parse(communities, people)
}

// MustLoad is Load for program start-up
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from YAML documents
func Parse(communitiesYAML, peopleYAML []byte) (*Catalog, error) {
	var cf communitiesFile
	if err := yaml.Unmarshal(communitiesYAML, &cf); err != nil {
		return nil, fmt.Errorf("parse communities: %w", err)
	}
	var pf peopleFile
	if err := yaml.Unmarshal(peopleYAML, &pf); err != nil {
		return nil, fmt.Errorf("parse people: %w", err)
	}

	c := &Catalog{
		communities: cf.Communities,
		people:      pf.People,
		communityIx: make(map[string]int, len(cf.Communities)),
		personIx:    make(map[string]int, len(pf.People)),
	}
	for i, com := range c.communities {
		if com.ID == "" {
			return nil, fmt.Errorf("community %q has no id", com.Name)
		}
		if _, dup := c.communityIx[com.ID]; dup {
			return nil, fmt.Errorf("duplicate community id %q", com.ID)
		}
		c.communityIx[com.ID] = i
	}
	for i, p := range c.people {
		if _, dup := c.personIx[p.ID]; dup || p.ID == "" {
			return nil, fmt.Errorf("invalid or duplicate person id %q", p.ID)
		}
		c.personIx[p.ID] = i
	}
	return c, nil
}

// Communities returns a copy of the predefined communities in catalog order
func (c *Catalog) Communities() []model.Community {
	out := make([]model.Community, len(c.communities))
	copy(out, c.communities)
	return out
}

// Community looks up a predefined community
func (c *Catalog) Community(id string) (model.Community, bool) {
	i, ok := c.communityIx[id]
	if !ok {
		return model.Community{}, false
	}
	return c.communities[i], true
}

// People returns a copy of the people directory
func (c *Catalog) People() []model.Person {
	out := make([]model.Person, len(c.people))
	copy(out, c.people)
	return out
}

// Person looks up a directory entry
func (c *Catalog) Person(id string) (model.Person, bool) {
	i, ok := c.personIx[id]
	if !ok {
		return model.Person{}, false
	}
	return c.people[i], true
}
