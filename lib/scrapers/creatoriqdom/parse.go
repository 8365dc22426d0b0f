package creatoriqdom

import (
	"fmt"
	"strings"
	"truevibe-backend/lib/htmlutil"
	"truevibe-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// selectors lifted from the report's rendered markup; they track the
// MUI class hashes the dashboard currently ships with
const (
	profileCardSelector     = ".HeightPreservingItem-module__root"
	profileNameSelector     = `.MuiStack-root.css-bxytpu [data-testid="creator-fullname"]`
	profileHandleSelector   = `.MuiStack-root.css-bxytpu [data-testid="creator-handle"]`
	profileAvatarSelector   = `.MuiStack-root.css-bxytpu [data-testid="creator-avatar"] img`
	profileBioSelector      = `[data-testid="creator-bio"]`
	platformStackSelector   = ".MuiStack-root.css-18zsr3k"
	platformIconSelector    = ".ciq-icon"
	followerSelector        = ".MuiTypography-body-lg"
	detailRootSelector      = `[data-testid="creator-details-sidebar-root"]`
	detailAboutSelector     = detailRootSelector + " .MuiTypography-root.MuiTypography-title-md"
	detailTagsSelector      = ".MuiTypography-root.MuiTypography-body-md.css-12t7p4b"
	socialLinkSelector      = ".MuiChip-action"
	followerCountSelector   = ".MuiTypography-root.MuiTypography-h4.css-rgovxk"
	engagementSelector      = ".MuiStack-root.css-1qqjprm"
	contentImageSelector    = `img[src^="https://static-resources.creatoriq.com/social-pictures"]`
	contentLinkSelector     = `a[data-testid="post-card"]`
	femaleAudienceSelector  = `[data-testid="pie-chart-Female-value"]`
	maleAudienceSelector    = `[data-testid="pie-chart-Male-value"]`
	ageLabelSelectorPattern = `[data-testid="bar-chart-right-label-%s"]`
)

var platformClassMap = map[string]string{
	"ciq-instagram-logo": "Instagram",
	"ciq-tiktok-logo":    "TikTok",
	"ciq-youtube-logo":   "YouTube",
}

var ageGroups = []string{"<18", "18-24", "25-34", "35-44", "45-64"}

func platformFromIcon(iconClass string) string {
	for class, platform := range platformClassMap {
		if strings.Contains(iconClass, class) {
			return platform
		}
	}
	return "Unknown"
}

func parseFeed(feedHtml string, maxProfiles int) ([]ProfileCard, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(feedHtml))
	if err != nil {
		return nil, nil, err
	}

	var profiles []ProfileCard
	var warnings []string
	seenHandles := map[string]struct{}{}

	doc.Find(profileCardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		profile, ok := parseProfileCard(card)
		if !ok {
			return true
		}

		key := textutil.NormalizeHandle(profile.Handle)
		if key == "" {
			return true
		}
		if _, seen := seenHandles[key]; seen {
			warnings = append(warnings, fmt.Sprintf("skipped duplicate profile %q", profile.Handle))
			return true
		}
		seenHandles[key] = struct{}{}

		profiles = append(profiles, profile)
		return maxProfiles <= 0 || len(profiles) < maxProfiles
	})

	return profiles, warnings, nil
}

func parseProfileCard(card *goquery.Selection) (ProfileCard, bool) {
	name := card.Find(profileNameSelector)
	handle := card.Find(profileHandleSelector)
	avatar := card.Find(profileAvatarSelector)
	if name.Length() == 0 || handle.Length() == 0 || avatar.Length() == 0 {
		return ProfileCard{}, false
	}

	profile := ProfileCard{
		FullName: htmlutil.CleanText(name.Text()),
		Handle:   htmlutil.CleanText(handle.Text()),
		ImageURL: avatar.AttrOr("src", ""),
		Platform: "Unknown",
		Bio:      "N/A",
	}

	stack := card.Find(platformStackSelector).First()
	if stack.Length() > 0 {
		iconClass := stack.Find(platformIconSelector).First().AttrOr("class", "")
		profile.Platform = platformFromIcon(iconClass)
		profile.Followers = htmlutil.CleanText(stack.Find(followerSelector).First().Text())
	}

	bio := card.Find(profileBioSelector)
	if bio.Length() > 0 {
		profile.Bio = htmlutil.CleanText(bio.Text())
	}

	return profile, true
}

func textOrNA(sel *goquery.Selection) string {
	text := htmlutil.CleanText(sel.First().Text())
	if sel.Length() == 0 || text == "" {
		return "N/A"
	}
	return text
}

func parseDetailSidebar(sidebarHtml string) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sidebarHtml))
	if err != nil {
		return nil, err
	}
	if doc.Find(detailRootSelector).Length() == 0 {
		return nil, fmt.Errorf("detail sidebar root not found")
	}

	details := map[string]any{}
	details["About"] = textOrNA(doc.Find(detailAboutSelector))

	tags := doc.Find(detailTagsSelector)
	details["Tags"] = "N/A"
	details["Category"] = "N/A"
	if tags.Length() > 0 {
		details["Tags"] = textOrNA(tags.Eq(0))
		if tags.Length() > 1 {
			details["Category"] = textOrNA(tags.Eq(1))
		}
	}

	socialLinks := []string{}
	doc.Find(socialLinkSelector).Each(func(_ int, account *goquery.Selection) {
		if link := account.AttrOr("href", ""); link != "" {
			socialLinks = append(socialLinks, link)
		}
	})
	details["Social Links"] = socialLinks

	followerCounts := doc.Find(followerCountSelector)
	if followerCounts.Length() > 0 {
		details["Instagram Followers"] = textOrNA(followerCounts.Eq(0))
		details["TikTok Followers"] = "N/A"
		if followerCounts.Length() > 1 {
			details["TikTok Followers"] = textOrNA(followerCounts.Eq(1))
		}
	}
	engagements := doc.Find(engagementSelector)
	if engagements.Length() > 0 {
		details["Instagram Engagement Rate"] = textOrNA(engagements.Eq(0))
		details["TikTok Engagement Rate"] = "N/A"
		if engagements.Length() > 1 {
			details["TikTok Engagement Rate"] = textOrNA(engagements.Eq(1))
		}
	}

	topContent := []map[string]string{}
	images := doc.Find(contentImageSelector)
	links := doc.Find(contentLinkSelector)
	limit := min(3, min(images.Length(), links.Length()))
	for i := 0; i < limit; i++ {
		topContent = append(topContent, map[string]string{
			"Image URL": images.Eq(i).AttrOr("src", ""),
			"Post URL":  links.Eq(i).AttrOr("href", ""),
		})
	}
	details["Top Content"] = topContent

	details["Female Audience"] = textOrNA(doc.Find(femaleAudienceSelector))
	details["Male Audience"] = textOrNA(doc.Find(maleAudienceSelector))

	ageDemographics := map[string]string{}
	for _, group := range ageGroups {
		sel := fmt.Sprintf(ageLabelSelectorPattern, group)
		ageDemographics[group] = textOrNA(doc.Find(sel))
	}
	details["Age Demographics"] = ageDemographics

	return details, nil
}
