package profile

import (
	"encoding/json"
	"fmt"
)

// SiteConfig is the process-wide site description loaded from site.json.
type SiteConfig struct {
	FamilyName string         `json:"familyName"`
	Tagline    string         `json:"tagline,omitempty"`
	Profiles   []SiteProfile  `json:"profiles"`
	Nav        *NavVisibility `json:"nav,omitempty"`
}

// SiteProfile is the navigation entry for one profile document.
type SiteProfile struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	ShortTitle string   `json:"shortTitle"`
	Location   Location `json:"location"`
	Avatar     string   `json:"avatar,omitempty"`
	Template   Template `json:"template"`
}

// NavVisibility toggles optional header links. A nil flag means shown.
type NavVisibility struct {
	ShowFeed    *bool `json:"showFeed,omitempty"`
	ShowContact *bool `json:"showContact,omitempty"`
	ShowAbout   *bool `json:"showAbout,omitempty"`
}

func (c *SiteConfig) ShowFeed() bool    { return c.Nav == nil || flag(c.Nav.ShowFeed) }
func (c *SiteConfig) ShowContact() bool { return c.Nav == nil || flag(c.Nav.ShowContact) }
func (c *SiteConfig) ShowAbout() bool   { return c.Nav == nil || flag(c.Nav.ShowAbout) }

func flag(b *bool) bool {
	return b == nil || *b
}

// DecodeSite parses a site.json document.
func DecodeSite(data []byte) (*SiteConfig, error) {
	var cfg SiteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("profile: decode site config: %w", err)
	}
	return &cfg, nil
}
