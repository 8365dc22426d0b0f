// Package profiles defines the canonical creator shape every source
// adapter normalizes into, plus the normalizers themselves.
package profiles

import (
	"encoding/json"
	"errors"
)

// ErrNoHandle marks a record whose identity could not be determined.
// Callers are expected to collect it as a warning and move on rather
// than abort the batch.
var ErrNoHandle = errors.New("creator record has no usable handle")

// Demographics keeps the well-known fields every adapter can produce
// as typed members and funnels everything unrecognized into Extra so
// upstream data is never dropped.
type Demographics struct {
	Bio         string   `json:"bio,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	SocialLinks []string `json:"social_links,omitempty"`

	Country  string `json:"country,omitempty"`
	City     string `json:"city,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Language string `json:"language,omitempty"`

	Tags          []string `json:"tags,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	SubCategories []string `json:"subCategories,omitempty"`

	// free-text detail fields from a per-profile crawl pass
	Details map[string]any `json:"details,omitempty"`

	// residual upstream fields with no typed member
	Extra map[string]any `json:"-"`
}

func (d Demographics) IsZero() bool {
	return d.Bio == "" && d.ImageURL == "" && len(d.SocialLinks) == 0 &&
		d.Country == "" && d.City == "" && d.Gender == "" && d.Language == "" &&
		len(d.Tags) == 0 && len(d.Categories) == 0 && len(d.SubCategories) == 0 &&
		len(d.Details) == 0 && len(d.Extra) == 0
}

var knownDemographicKeys = map[string]struct{}{
	"bio": {}, "image_url": {}, "social_links": {},
	"country": {}, "city": {}, "gender": {}, "language": {},
	"tags": {}, "categories": {}, "subCategories": {},
	"details": {},
}

func (d Demographics) MarshalJSON() ([]byte, error) {
	type alias Demographics
	known, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	if len(d.Extra) == 0 {
		return known, nil
	}

	var merged map[string]any
	err = json.Unmarshal(known, &merged)
	if err != nil {
		return nil, err
	}
	for key, value := range d.Extra {
		if _, taken := knownDemographicKeys[key]; taken {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}

func (d *Demographics) UnmarshalJSON(data []byte) error {
	type alias Demographics
	var known alias
	err := json.Unmarshal(data, &known)
	if err != nil {
		return err
	}
	*d = Demographics(known)

	var raw map[string]any
	err = json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}
	for key, value := range raw {
		if _, taken := knownDemographicKeys[key]; taken {
			continue
		}
		if value == nil {
			continue
		}
		if d.Extra == nil {
			d.Extra = map[string]any{}
		}
		d.Extra[key] = value
	}
	return nil
}

// CreatorProfile is the canonical record every source normalizes to.
// (Handle, Platform) is the stable identity key; Handle is stored
// lower-cased with the leading "@" stripped.
type CreatorProfile struct {
	Name          string
	Handle        string
	Platform      string
	FollowerCount *int64
	Demographics  Demographics
	ProfileURL    string
	ProfileImage  string
}

// Synthetic reports whether this profile came from the placeholder
// link fetcher rather than a real scrape.
func (p CreatorProfile) Synthetic() bool {
	flag, _ := p.Demographics.Extra["synthetic"].(string)
	return flag == "true"
}
