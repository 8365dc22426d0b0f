// Package linker finds creators that are likely the same person
// behind different stored identities: the same handle on two
// platforms, or near-identical handles that suggest a duplicate row.
package linker

import (
	"context"
	"sort"
	"truevibe-backend/services/kolstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/linker")

// DefaultMinCorrelation filters out fuzzy matches too weak to be
// worth a human look.
const DefaultMinCorrelation = 0.75

type Service struct {
	store kolstore.Service
}

func NewService(store kolstore.Service) Service {
	return Service{store: store}
}

type CreatorRef struct {
	ID       int64
	Name     string
	Handle   string
	Platform string
}

// CrossPlatformLink is the same handle seen on two platforms,
// treated as one person with two accounts.
type CrossPlatformLink struct {
	Left  CreatorRef
	Right CreatorRef
}

// DuplicateSuggestion is a near-match that probably entered the
// store twice under slightly different handles.
type DuplicateSuggestion struct {
	Left        CreatorRef
	Right       CreatorRef
	Correlation float64
}

func (s Service) creatorsByPlatform(ctx context.Context) ([]string, map[string][]CreatorRef, error) {
	rows, err := s.store.ListBySearch(ctx, "", 0)
	if err != nil {
		return nil, nil, err
	}

	byPlatform := make(map[string][]CreatorRef)
	for _, row := range rows {
		byPlatform[row.Platform] = append(byPlatform[row.Platform], CreatorRef{
			ID:       row.ID,
			Name:     row.Name,
			Handle:   row.Handle,
			Platform: row.Platform,
		})
	}

	platforms := make([]string, 0, len(byPlatform))
	for platform := range byPlatform {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms, byPlatform, nil
}

func candidates(refs []CreatorRef) []Candidate {
	out := make([]Candidate, len(refs))
	for i, ref := range refs {
		out[i] = Candidate{ID: ref.ID, Key: ref.Handle}
	}
	return out
}

func refById(refs []CreatorRef, id int64) CreatorRef {
	for _, ref := range refs {
		if ref.ID == id {
			return ref
		}
	}
	return CreatorRef{}
}

// LinkAcrossPlatforms pairs identical handles across every platform
// pair in the store.
func (s Service) LinkAcrossPlatforms(ctx context.Context) ([]CrossPlatformLink, error) {
	ctx, span := tracer.Start(ctx, "LinkAcrossPlatforms")
	defer span.End()

	platforms, byPlatform, err := s.creatorsByPlatform(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list creators")
		return nil, err
	}

	var links []CrossPlatformLink
	for i := 0; i < len(platforms); i++ {
		for j := i + 1; j < len(platforms); j++ {
			left := byPlatform[platforms[i]]
			right := byPlatform[platforms[j]]
			for _, match := range MatchCandidates(candidates(left), candidates(right), 1) {
				links = append(links, CrossPlatformLink{
					Left:  refById(left, match.Left.ID),
					Right: refById(right, match.Right.ID),
				})
			}
		}
	}
	return links, nil
}

// SuggestDuplicates surfaces near-identical handles, both across
// platforms and within one, above minCorrelation. Exact matches are
// excluded since those are cross-platform links, not duplicates.
func (s Service) SuggestDuplicates(ctx context.Context, minCorrelation float64) ([]DuplicateSuggestion, error) {
	ctx, span := tracer.Start(ctx, "SuggestDuplicates")
	defer span.End()

	if minCorrelation <= 0 {
		minCorrelation = DefaultMinCorrelation
	}

	platforms, byPlatform, err := s.creatorsByPlatform(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list creators")
		return nil, err
	}

	var suggestions []DuplicateSuggestion
	keep := func(left, right []CreatorRef, match Match) {
		// exact matches are cross-platform links, not duplicates
		if match.Correlation == 1 {
			return
		}
		suggestions = append(suggestions, DuplicateSuggestion{
			Left:        refById(left, match.Left.ID),
			Right:       refById(right, match.Right.ID),
			Correlation: match.Correlation,
		})
	}

	for i := 0; i < len(platforms); i++ {
		// within one platform the unique index can't catch handle
		// typos, so compare each creator against the rest
		refs := byPlatform[platforms[i]]
		for k := range refs {
			for _, match := range MatchCandidates(candidates(refs[k:k+1]), candidates(refs[k+1:]), minCorrelation) {
				keep(refs, refs, match)
			}
		}

		for j := i + 1; j < len(platforms); j++ {
			left := byPlatform[platforms[i]]
			right := byPlatform[platforms[j]]
			for _, match := range MatchCandidates(candidates(left), candidates(right), minCorrelation) {
				keep(left, right, match)
			}
		}
	}

	sort.Slice(suggestions, func(a, b int) bool {
		return suggestions[a].Correlation > suggestions[b].Correlation
	})
	return suggestions, nil
}
