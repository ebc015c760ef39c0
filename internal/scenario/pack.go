package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Pack is a hand-written set of scenarios that can stand in for the
// generator, e.g. for offline classroom use.
type Pack struct {
	Name      string          `yaml:"name"`
	Scenarios []DailyScenario `yaml:"scenarios"`
}

// ParsePack decodes a pack from YAML (or JSON) bytes and validates every
// scenario in it.
func ParsePack(data []byte) (*Pack, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("scenario pack: payload is empty")
	}
	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("scenario pack: decode: %w", err)
	}
	if len(p.Scenarios) == 0 {
		return nil, fmt.Errorf("scenario pack: no scenarios")
	}
	seen := make(map[string]bool, len(p.Scenarios))
	for i := range p.Scenarios {
		sc := &p.Scenarios[i]
		if sc.ID == "" {
			sc.ID = fmt.Sprintf("pack-%d", i+1)
		}
		if seen[sc.ID] {
			return nil, fmt.Errorf("scenario pack: duplicate scenario id %q", sc.ID)
		}
		seen[sc.ID] = true
		if err := Validate(sc); err != nil {
			return nil, fmt.Errorf("scenario pack: scenario %q: %w", sc.ID, err)
		}
	}
	return &p, nil
}

// LoadPackReader reads a pack from r.
func LoadPackReader(r io.Reader) (*Pack, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scenario pack: read: %w", err)
	}
	return ParsePack(content)
}

// LoadPackFile loads a pack from path.
func LoadPackFile(path string) (*Pack, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario pack: read %s: %w", path, err)
	}
	p, err := ParsePack(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Pick returns a copy of the first scenario for month that matches studio.
// Scenarios without a studio match any studio.
func (p *Pack) Pick(month int, studio StudioType) (*DailyScenario, bool) {
	for i := range p.Scenarios {
		sc := &p.Scenarios[i]
		if sc.Month != month {
			continue
		}
		if sc.Studio != "" && sc.Studio != studio {
			continue
		}
		c := sc.Clone()
		c.Studio = studio
		return c, true
	}
	return nil, false
}

// EncodePack renders p as YAML.
func EncodePack(p *Pack) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("scenario pack: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("scenario pack: encode: %w", err)
	}
	return buf.Bytes(), nil
}
