// Package content serves the university's static informational records.
// Everything is loaded once at startup from embedded JSON and is immutable
// afterwards, so concurrent reads need no synchronization.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var dataFS embed.FS

// Store is a read-only lookup from topic keys to structured records.
type Store struct {
	schools      []School
	courses      map[string][]Course
	scholarships []Scholarship
	campus       Campus
	placements   Placements
	events       []Event
	contact      Contact
}

// Load parses the embedded data files into an immutable store.
func Load() (*Store, error) {
	s := &Store{}
	if err := loadFile("schools.json", &s.schools); err != nil {
		return nil, err
	}
	if err := loadFile("courses.json", &s.courses); err != nil {
		return nil, err
	}
	if err := loadFile("scholarships.json", &s.scholarships); err != nil {
		return nil, err
	}
	if err := loadFile("campus.json", &s.campus); err != nil {
		return nil, err
	}
	if err := loadFile("placements.json", &s.placements); err != nil {
		return nil, err
	}
	if err := loadFile("cocurricular.json", &s.events); err != nil {
		return nil, err
	}
	if err := loadFile("contact.json", &s.contact); err != nil {
		return nil, err
	}
	return s, nil
}

func loadFile(name string, out any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s *Store) Schools() []School {
	return append([]School(nil), s.schools...)
}

func (s *Store) School(id string) (School, bool) {
	for _, sc := range s.schools {
		if sc.ID == id {
			return sc, true
		}
	}
	return School{}, false
}

// Courses returns the programs offered by a school. Unknown school ids
// yield an empty list, which handlers render as "no courses yet".
func (s *Store) Courses(schoolID string) []Course {
	return append([]Course(nil), s.courses[schoolID]...)
}

func (s *Store) Course(schoolID, courseID string) (Course, bool) {
	for _, c := range s.courses[schoolID] {
		if c.ID == courseID {
			return c, true
		}
	}
	return Course{}, false
}

func (s *Store) Scholarships() []Scholarship {
	return append([]Scholarship(nil), s.scholarships...)
}

func (s *Store) Scholarship(title string) (Scholarship, bool) {
	for _, sc := range s.scholarships {
		if sc.Title == title {
			return sc, true
		}
	}
	return Scholarship{}, false
}

func (s *Store) Campus() Campus {
	return Campus{
		Infrastructure: append([]CampusItem(nil), s.campus.Infrastructure...),
		Facilities:     append([]CampusItem(nil), s.campus.Facilities...),
	}
}

func (s *Store) Placements() Placements {
	p := s.placements
	p.TopRecruiters = append([]string(nil), s.placements.TopRecruiters...)
	p.Activities = append([]string(nil), s.placements.Activities...)
	return p
}

func (s *Store) Events() []Event {
	return append([]Event(nil), s.events...)
}

func (s *Store) Event(name string) (Event, bool) {
	for _, e := range s.events {
		if e.Name == name {
			return e, true
		}
	}
	return Event{}, false
}

func (s *Store) Contact() Contact {
	return s.contact
}
