// Package track provides the track description and the mesher that discretises
// it into longitudinal positions for the lap simulation.
package track

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cxd309/lapsim/internal/simerr"
)

// SectionName is a string alias used as a section identifier.
type SectionName = string

// Kind classifies a section. It is assigned once, when the track is built or
// decoded, and never re-derived from the section name.
type Kind string

const (
	KindStraight Kind = "straight"
	KindTurn     Kind = "turn"
)

// Section is one named stretch of the track.
// Radius is only meaningful for turns; a turn with Radius 0 takes the
// configured turn radius when meshed.
type Section struct {
	Name   SectionName `json:"name"`
	Length float64     `json:"length"` // metres
	Kind   Kind        `json:"type"`
	Radius float64     `json:"radius,omitempty"` // metres
}

// Straight returns a straight section.
func Straight(name SectionName, length float64) Section {
	return Section{Name: name, Length: length, Kind: KindStraight}
}

// Turn returns a turn section. A radius of 0 defers to the configured turn radius.
func Turn(name SectionName, length, radius float64) Section {
	return Section{Name: name, Length: length, Kind: KindTurn, Radius: radius}
}

// IsStraight reports whether the section is a straight.
func (s Section) IsStraight() bool { return s.Kind == KindStraight }

// sectionJSON is the raw JSON shape of a Section, before the kind is resolved.
type sectionJSON struct {
	Name   SectionName `json:"name"`
	Length float64     `json:"length"`
	Kind   Kind        `json:"type"`
	Radius float64     `json:"radius"`
}

// UnmarshalJSON implements json.Unmarshaler for Section.
// The "type" field selects the kind; when it is absent the kind is inferred
// from the name, where "straight" or any name starting with it is a straight
// and everything else is a turn.
func (s *Section) UnmarshalJSON(data []byte) error {
	var aux sectionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Name = aux.Name
	s.Length = aux.Length
	s.Radius = aux.Radius

	switch aux.Kind {
	case KindStraight, KindTurn:
		s.Kind = aux.Kind
	case "":
		s.Kind = kindFromName(aux.Name)
	default:
		return fmt.Errorf("section %q: unknown section type %q", aux.Name, aux.Kind)
	}
	return nil
}

func kindFromName(name SectionName) Kind {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(name)), string(KindStraight)) {
		return KindStraight
	}
	return KindTurn
}

// Track is an ordered list of sections in travel order, plus the name of the
// turn whose apex seeds the deceleration sweep.
type Track struct {
	Sections      []Section   `json:"sections"`
	ReferenceTurn SectionName `json:"reference_turn"`
}

// Length returns the total track length in metres.
func (t Track) Length() float64 {
	var total float64
	for _, s := range t.Sections {
		total += s.Length
	}
	return total
}

// Section looks up a section by name.
func (t Track) Section(name SectionName) (Section, error) {
	for _, s := range t.Sections {
		if s.Name == name {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("section %q not found", name)
}

// Validate checks the track shape. Malformed input is a ConfigurationError;
// a well-formed track that cannot seed both sweeps is a DegenerateTrackError.
func (t Track) Validate() error {
	if len(t.Sections) == 0 {
		return simerr.Configf("track.sections", "track has no sections")
	}
	if t.ReferenceTurn == "" {
		return simerr.Configf("track.reference_turn", "reference turn must be named")
	}

	seen := make(map[SectionName]struct{}, len(t.Sections))
	straights := 0
	for i, s := range t.Sections {
		field := fmt.Sprintf("track.sections[%d]", i)
		if s.Name == "" {
			return simerr.Configf(field+".name", "section name is empty")
		}
		if _, dup := seen[s.Name]; dup {
			return simerr.Configf(field+".name", "duplicate section name %q", s.Name)
		}
		seen[s.Name] = struct{}{}

		if !(s.Length > 0) || math.IsInf(s.Length, 0) {
			return simerr.Configf(field+".length", "section %q length must be positive and finite, got %g", s.Name, s.Length)
		}

		switch s.Kind {
		case KindStraight:
			straights++
		case KindTurn:
			if s.Radius < 0 || math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
				return simerr.Configf(field+".radius", "turn %q radius must be non-negative and finite, got %g", s.Name, s.Radius)
			}
		default:
			return simerr.Configf(field+".type", "section %q has unknown type %q", s.Name, s.Kind)
		}
	}

	ref, err := t.Section(t.ReferenceTurn)
	if err != nil {
		return &simerr.DegenerateTrackError{Reason: fmt.Sprintf("reference turn %q is not on the track", t.ReferenceTurn)}
	}
	if ref.IsStraight() {
		return &simerr.DegenerateTrackError{Reason: fmt.Sprintf("reference turn %q is a straight", t.ReferenceTurn)}
	}
	if straights == 0 {
		return &simerr.DegenerateTrackError{Reason: "track has no straight sections"}
	}
	return nil
}
