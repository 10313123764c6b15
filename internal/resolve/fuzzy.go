// Package resolve turns bank names typed by a user into Paystack bank codes.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/paystack/paystack-cli/pkg/paystack"
)

// Match is a ranked candidate.
type Match struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Score int    `json:"score"`
}

var (
	ErrEmptyQuery = errors.New("empty bank name")
	ErrEmptyItems = errors.New("no banks to match against")
)

// AmbiguousError lists the banks that matched equally well.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous bank %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates:")
		for _, m := range e.Matches {
			_, _ = fmt.Fprintf(&b, "\n  %s: %s", m.Code, m.Name)
		}
	}
	return b.String()
}

type bankNames []paystack.Bank

func (s bankNames) String(i int) string { return strings.ToLower(s[i].Name) }

func (s bankNames) Len() int { return len(s) }

// Bank finds the bank a query refers to.
//
// A query equal to a bank code, slug, or name (case-insensitive) wins
// outright. Otherwise the best fuzzy name match is returned, or an
// *AmbiguousError when the top two candidates score the same.
func Bank(query string, banks []paystack.Bank) (paystack.Bank, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return paystack.Bank{}, ErrEmptyQuery
	}
	if len(banks) == 0 {
		return paystack.Bank{}, ErrEmptyItems
	}

	for _, b := range banks {
		if b.Code == query || strings.EqualFold(b.Slug, query) || strings.EqualFold(b.Name, query) {
			return b, nil
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), bankNames(banks))
	if len(results) == 0 {
		return paystack.Bank{}, fmt.Errorf("no bank matches %q", query)
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return paystack.Bank{}, &AmbiguousError{Query: query, Matches: buildMatches(banks, results, 5)}
	}
	return banks[results[0].Index], nil
}

// Candidates returns up to limit banks ranked by how well their names match query.
func Candidates(query string, banks []paystack.Bank, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(banks) == 0 || limit <= 0 {
		return nil
	}
	return buildMatches(banks, fuzzy.FindFrom(strings.ToLower(query), bankNames(banks)), limit)
}

func buildMatches(banks []paystack.Bank, results fuzzy.Matches, limit int) []Match {
	if len(results) > limit {
		results = results[:limit]
	}
	matches := make([]Match, 0, len(results))
	for _, r := range results {
		b := banks[r.Index]
		matches = append(matches, Match{Code: b.Code, Name: b.Name, Slug: b.Slug, Score: r.Score})
	}
	return matches
}
