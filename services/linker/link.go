package linker

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// Candidate is one creator identity on one platform.
type Candidate struct {
	ID  int64
	Key string
}

type Match struct {
	Left        Candidate
	Right       Candidate
	Correlation float64
}

// MatchCandidates pairs candidates from two platforms. Keys compare
// case-insensitively: exact matches pair up first at correlation 1,
// then the leftovers pair greedily by best similarity, dropping pairs
// below minCorrelation. Each candidate appears in at most one match.
func MatchCandidates(leftList, rightList []Candidate, minCorrelation float64) []Match {
	swapped := false
	if len(rightList) < len(leftList) {
		leftList, rightList = rightList, leftList
		swapped = true
	}

	byFoldedKey := make(map[string][]int, len(rightList))
	for i, right := range rightList {
		key := strings.ToLower(right.Key)
		byFoldedKey[key] = append(byFoldedKey[key], i)
	}

	var result []Match
	matchedLeft := make(map[int64]struct{})
	matchedRight := make(map[int64]struct{})

	emit := func(left, right Candidate, correlation float64) {
		match := Match{Left: left, Right: right, Correlation: correlation}
		if swapped {
			match.Left, match.Right = match.Right, match.Left
		}
		result = append(result, match)
		matchedLeft[left.ID] = struct{}{}
		matchedRight[right.ID] = struct{}{}
	}

	for _, left := range leftList {
		for _, i := range byFoldedKey[strings.ToLower(left.Key)] {
			right := rightList[i]
			if _, taken := matchedRight[right.ID]; taken {
				continue
			}
			emit(left, right, 1)
			break
		}
	}

	for _, left := range leftList {
		if _, taken := matchedLeft[left.ID]; taken {
			continue
		}

		var mostSimilar Candidate
		mostSimilarity := 0.0
		for _, right := range rightList {
			if _, taken := matchedRight[right.ID]; taken {
				continue
			}
			similarity := matchr.JaroWinkler(strings.ToLower(left.Key), strings.ToLower(right.Key), false)
			if similarity > mostSimilarity {
				mostSimilarity = similarity
				mostSimilar = right
			}
		}

		if mostSimilarity > 0 && mostSimilarity >= minCorrelation {
			emit(left, mostSimilar, mostSimilarity)
		}
	}

	return result
}
