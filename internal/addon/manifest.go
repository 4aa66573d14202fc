package addon

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the file describing an add-on inside its package.
const ManifestName = "addon.toml"

// manifest mirrors addon.toml.
type manifest struct {
	ID             string         `toml:"id"`
	Title          string         `toml:"title"`
	Author         string         `toml:"author"`
	Version        string         `toml:"version"`
	Category       string         `toml:"category"`
	Description    string         `toml:"description"`
	License        string         `toml:"license"`
	Released       toml.LocalDate `toml:"released"`
	Updated        toml.LocalDate `toml:"updated"`
	RelatedObjects []string       `toml:"related_objects"`
}

// LoadManifest reads an addon.toml file.
func LoadManifest(path string) (*Addon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes addon.toml content. Dates are TOML local dates
// (released = 2024-03-01) interpreted in UTC; string fields are trimmed.
func ParseManifest(data []byte) (*Addon, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	a := &Addon{
		ID:          strings.TrimSpace(m.ID),
		Title:       strings.TrimSpace(m.Title),
		Author:      strings.TrimSpace(m.Author),
		Version:     strings.TrimSpace(m.Version),
		Category:    strings.TrimSpace(m.Category),
		Description: strings.TrimSpace(m.Description),
		License:     strings.TrimSpace(m.License),
		Released:    localDate(m.Released),
		Updated:     localDate(m.Updated),
	}
	for _, p := range m.RelatedObjects {
		if p = strings.TrimSpace(p); p != "" {
			a.RelatedObjects = append(a.RelatedObjects, p)
		}
	}
	return a, nil
}

func localDate(d toml.LocalDate) time.Time {
	if d.Year == 0 && d.Month == 0 && d.Day == 0 {
		return time.Time{}
	}
	return d.AsTime(time.UTC)
}
