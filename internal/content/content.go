// Package content loads the static portfolio document the site renders.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ErrInvalid marks a document that parsed but cannot be rendered
var ErrInvalid = errors.New("invalid portfolio content")

type PersonalInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Tagline  string `json:"tagline"`
	Location string `json:"location"`
	Website  string `json:"website"`
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Avatar   string `json:"avatar"`
}

type Bio struct {
	Summary    string `json:"summary"`
	Philosophy string `json:"philosophy"`
	About      string `json:"about"`
}

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Year        string   `json:"year"`
	LiveURL     string   `json:"liveUrl,omitempty"`
	RepoURL     string   `json:"repoUrl,omitempty"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	Features    []string `json:"features"`
	Highlights  string   `json:"highlights"`
	Performance string   `json:"performance,omitempty"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Period      string `json:"period,omitempty"`
}

// Certification backs the certificate modal
type Certification struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type,omitempty"`
	Year        string   `json:"year,omitempty"`
	Description string   `json:"description"`
	Topics      []string `json:"topics,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// Portfolio is the whole document, read-only after Load
type Portfolio struct {
	PersonalInfo   PersonalInfo        `json:"personalInfo"`
	Bio            Bio                 `json:"bio"`
	Achievements   []Achievement       `json:"achievements"`
	Skills         map[string][]string `json:"skills"`
	SkillLevels    map[string]int      `json:"skillLevels,omitempty"`
	HeroTitles     []string            `json:"heroTitles,omitempty"`
	Projects       []Project           `json:"projects"`
	Education      Education           `json:"education"`
	Certifications []Certification     `json:"certifications"`
	Keywords       []string            `json:"keywords"`
}

// Load reads and validates the document at path
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio content %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio content %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a JSON document
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio JSON: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects documents that would render partially
func (p *Portfolio) Validate() error {
	if strings.TrimSpace(p.PersonalInfo.Name) == "" {
		return fmt.Errorf("%w: personalInfo.name is required", ErrInvalid)
	}

	seen := make(map[string]bool, len(p.Projects))
	for i, proj := range p.Projects {
		if proj.ID == "" {
			return fmt.Errorf("%w: project %d has no id", ErrInvalid, i)
		}
		if proj.Title == "" {
			return fmt.Errorf("%w: project %q has no title", ErrInvalid, proj.ID)
		}
		if seen[proj.ID] {
			return fmt.Errorf("%w: duplicate project id %q", ErrInvalid, proj.ID)
		}
		seen[proj.ID] = true
	}

	certs := make(map[string]bool, len(p.Certifications))
	for i, c := range p.Certifications {
		if c.ID == "" {
			return fmt.Errorf("%w: certification %d has no id", ErrInvalid, i)
		}
		if certs[c.ID] {
			return fmt.Errorf("%w: duplicate certification id %q", ErrInvalid, c.ID)
		}
		certs[c.ID] = true
	}

	for name, level := range p.SkillLevels {
		if level < 0 || level > 100 {
			return fmt.Errorf("%w: skill level %q out of range: %d", ErrInvalid, name, level)
		}
	}
	return nil
}

// Project finds a project by id
func (p *Portfolio) Project(id string) (Project, bool) {
	for _, proj := range p.Projects {
		if proj.ID == id {
			return proj, true
		}
	}
	return Project{}, false
}

// Certification finds a certification by id
func (p *Portfolio) Certification(id string) (Certification, bool) {
	for _, c := range p.Certifications {
		if c.ID == id {
			return c, true
		}
	}
	return Certification{}, false
}

// SkillCategories returns the skill categories in a stable order
func (p *Portfolio) SkillCategories() []string {
	cats := make([]string, 0, len(p.Skills))
	for c := range p.Skills {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// SkillLevel is one named meter
type SkillLevel struct {
	Name  string
	Level int
}

// Levels returns the skill meters sorted by level, highest first
func (p *Portfolio) Levels() []SkillLevel {
	out := make([]SkillLevel, 0, len(p.SkillLevels))
	for name, level := range p.SkillLevels {
		out = append(out, SkillLevel{Name: name, Level: level})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Level == out[j].Level {
			return out[i].Name < out[j].Name
		}
		return out[i].Level > out[j].Level
	})
	return out
}
