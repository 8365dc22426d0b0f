package profiles

import (
	"fmt"
	"truevibe-backend/lib/scrapers/creatoriqdom"
	"truevibe-backend/lib/scrapers/linkstub"
	"truevibe-backend/lib/textutil"
)

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

func numberField(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		parsed, ok := textutil.ParseCompactNumber(n)
		if !ok {
			return 0, false
		}
		return int64(parsed), true
	}
	return 0, false
}

func stringList(v any) []string {
	switch list := v.(type) {
	case nil:
		return nil
	case []string:
		return list
	case string:
		if list == "" {
			return nil
		}
		return []string{list}
	case []any:
		var out []string
		for _, item := range list {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	}
	return nil
}

// FromCollection normalizes a merged collection-API creator payload.
// Identity prefers the declared primary username, falling back to the
// internal list id; followers prefer the top-level total over the
// first linked account's count.
func FromCollection(payload map[string]any) (CreatorProfile, error) {
	accounts, _ := payload["accounts"].([]any)
	var account map[string]any
	if len(accounts) > 0 {
		account, _ = accounts[0].(map[string]any)
	}

	handleRaw := stringField(payload["primarySocialUsername"])
	if handleRaw == "" {
		handleRaw = fmt.Sprint(orEmpty(payload["listCreatorsId"]))
	}
	handle := textutil.NormalizeHandle(handleRaw)
	if handle == "" {
		return CreatorProfile{}, ErrNoHandle
	}

	name := stringField(payload["fullName"])
	if name == "" {
		name = handle
	}
	platform := stringField(payload["primaryNetwork"])
	if platform == "" {
		platform = stringField(account["network"])
	}
	if platform == "" {
		platform = "Unknown"
	}

	var followers *int64
	if n, ok := numberField(payload["totalSocialConnections"]); ok {
		followers = &n
	} else if n, ok := numberField(account["followers"]); ok {
		followers = &n
	}

	return CreatorProfile{
		Name:          name,
		Handle:        handle,
		Platform:      platform,
		FollowerCount: followers,
		Demographics: Demographics{
			Country:       stringField(payload["country"]),
			City:          stringField(payload["city"]),
			Gender:        stringField(payload["gender"]),
			Language:      stringField(payload["language"]),
			Tags:          stringList(payload["tags"]),
			Categories:    stringList(payload["categories"]),
			SubCategories: stringList(payload["subCategories"]),
		},
		ProfileURL:   stringField(account["accountUrl"]),
		ProfileImage: stringField(payload["profilePictureURL"]),
	}, nil
}

func orEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}

// FromCard normalizes a profile card lifted off a rendered report.
func FromCard(card creatoriqdom.ProfileCard) (CreatorProfile, error) {
	handle := textutil.NormalizeHandle(card.Handle)
	if handle == "" || handle == "unknown" {
		return CreatorProfile{}, ErrNoHandle
	}

	name := card.FullName
	if name == "" {
		name = handle
	}
	platform := card.Platform
	if platform == "" {
		platform = "Unknown"
	}

	var followers *int64
	if n, ok := card.FollowerCount(); ok {
		followers = &n
	}

	demographics := Demographics{
		Bio:      card.Bio,
		ImageURL: card.ImageURL,
		Details:  card.Details,
	}

	return CreatorProfile{
		Name:          name,
		Handle:        handle,
		Platform:      platform,
		FollowerCount: followers,
		Demographics:  demographics,
	}, nil
}

// FromLink normalizes a synthetic placeholder profile. The synthetic
// marker travels through in Demographics.Extra so downstream consumers
// can tell it apart from scraped data.
func FromLink(stub linkstub.Profile) CreatorProfile {
	followers := stub.FollowerCount
	extra := map[string]any{}
	for key, value := range stub.Demographics {
		extra[key] = value
	}
	// the seeded rate goes into Details so the engagement scorer can
	// extract it like a crawled one
	var details map[string]any
	if stub.EngagementRate != "" {
		details = map[string]any{"Engagement Rate": stub.EngagementRate}
	}
	return CreatorProfile{
		Name:          stub.Name,
		Handle:        textutil.NormalizeHandle(stub.Handle),
		Platform:      stub.Platform,
		FollowerCount: &followers,
		Demographics:  Demographics{Details: details, Extra: extra},
		ProfileURL:    stub.PublishLink,
	}
}
