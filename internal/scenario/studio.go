package scenario

import (
	"fmt"
	"strings"
)

// StudioType is the professional setting chosen once per session.
type StudioType string

const (
	StudioLegal      StudioType = "legal"
	StudioMedical    StudioType = "medical"
	StudioArchitect  StudioType = "architect"
	StudioAccounting StudioType = "accounting"
)

type studioInfo struct {
	label     string
	icon      string
	deadlines string
}

var studios = map[StudioType]studioInfo{
	StudioLegal:      {label: "Studio Legale", icon: "⚖", deadlines: "court"},
	StudioMedical:    {label: "Studio Medico", icon: "✚", deadlines: "clinical"},
	StudioArchitect:  {label: "Studio Architettura", icon: "📐", deadlines: "construction site"},
	StudioAccounting: {label: "Studio Commercialista", icon: "🧮", deadlines: "tax"},
}

// AllStudios returns every studio in display order.
func AllStudios() []StudioType {
	return []StudioType{StudioLegal, StudioMedical, StudioArchitect, StudioAccounting}
}

// Valid reports whether s is one of the four studios.
func (s StudioType) Valid() bool {
	_, ok := studios[s]
	return ok
}

// Label returns the studio's display name, which is also the name used in
// prompts.
func (s StudioType) Label() string {
	if info, ok := studios[s]; ok {
		return info.label
	}
	return string(s)
}

// Icon returns a single glyph for the selector screen.
func (s StudioType) Icon() string {
	return studios[s].icon
}

// Blurb describes what the simulation focuses on for this studio.
func (s StudioType) Blurb() string {
	info, ok := studios[s]
	if !ok {
		return ""
	}
	return fmt.Sprintf("Focus on %s deadlines and studio-specific client handling.", info.deadlines)
}

// ParseStudio accepts either the key ("legal") or the label
// ("Studio Legale"), case-insensitively.
func ParseStudio(s string) (StudioType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, st := range AllStudios() {
		if norm == string(st) || norm == strings.ToLower(st.Label()) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown studio %q (want one of legal, medical, architect, accounting)", s)
}
