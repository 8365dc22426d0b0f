// Package creatoriq talks to the CreatorIQ shared-report GraphQL
// endpoint. A shared report is identified by the slug embedded in its
// publish link; the slug doubles as the credential via the
// `Report <slug>` authorization scheme.
package creatoriq

import (
	"fmt"
	"regexp"
	"strings"
	"truevibe-backend/lib/restyutil"
	"truevibe-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/creatoriq")

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput dumps every http exchange of clients
// created afterwards, for debugging against the live endpoint.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

const graphqlEndpoint = "https://app.creatoriq.com/api/collections/graphql"

var slugPattern = regexp.MustCompile(`/lists/report/([^/?#]+)`)

// ExtractSlug pulls the share slug out of a CreatorIQ publish link.
func ExtractSlug(publishLink string) (string, error) {
	match := slugPattern.FindStringSubmatch(publishLink)
	if match == nil {
		return "", fmt.Errorf("unable to extract a share slug from %q", publishLink)
	}
	return match[1], nil
}

func IsCreatorIQLink(publishLink string) bool {
	return strings.Contains(publishLink, "creatoriq.com")
}

type StatusError struct {
	Code int
	Body string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("creatoriq request failed with status %d: %s", e.Code, e.Body)
}

// CreatorRecord pairs a creator's collection listing with its optional
// per-creator detail payload.
type CreatorRecord struct {
	Data   map[string]any
	Detail map[string]any
}

// Merged overlays the detail payload on top of the collection payload,
// never letting a null field from either side clobber a present one.
func (r CreatorRecord) Merged() map[string]any {
	payload := map[string]any{}
	for _, source := range []map[string]any{r.Data, r.Detail} {
		for key, value := range source {
			if value == nil {
				continue
			}
			payload[key] = value
		}
	}
	return payload
}

type Client struct {
	http *resty.Client
	slug string
	// captured from the first collection fetch, scopes detail queries
	listId string
}

func NewClient(slug string) *Client {
	client := resty.New()
	client.SetHeader("Authorization", fmt.Sprintf("Report %s", slug))
	client.SetHeader("Accept", "application/graphql-response+json,application/json;q=0.9")
	client.SetHeader("Origin", "https://vero.creatoriq.com")
	client.SetHeader("Referer", "https://vero.creatoriq.com/")

	telemetry.InstrumentResty(client, "scrapers/creatoriq/http")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client, slug: slug}
}
