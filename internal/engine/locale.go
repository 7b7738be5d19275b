package engine

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// Locale describes the target region for domestic searches.
type Locale struct {
	Country    string         // ISO 3166 code compared with channel country
	Language   string         // relevanceLanguage for the search API
	Qualifiers []string       // words OR-ed onto ASCII queries
	Script     *regexp.Regexp // matches at least one locale-specific character
}

// JapanLocale is the default target: hiragana, katakana or kanji, country JP.
func JapanLocale() Locale {
	return Locale{
		Country:    "JP",
		Language:   "ja",
		Qualifiers: []string{"解説", "日本語", "まとめ", "レビュー"},
		Script:     regexp.MustCompile(`[ぁ-んァ-ン一-龠]`),
	}
}

// HasScript reports whether s contains a locale-specific character.
func (l Locale) HasScript(s string) bool {
	return l.Script != nil && l.Script.MatchString(s)
}

// BiasQuery appends the qualifier disjunction to pure-ASCII queries.
// The search API has no hard region filter on relevance, so this pulls
// local videos in for English keywords.
func (l Locale) BiasQuery(query string) string {
	if len(l.Qualifiers) == 0 || !IsASCII(query) {
		return query
	}
	return query + " (" + strings.Join(l.Qualifiers, "|") + ")"
}

// SearchCandidate is a search hit before locale filtering.
type SearchCandidate struct {
	Item         ListingItem
	ChannelID    string
	ChannelTitle string
}

// CountryLookup returns channel id → declared country ("" when unset)
// for a batch of channel ids in one call.
type CountryLookup func(ctx context.Context, channelIDs []string) (map[string]string, error)

// maxChannelLookup is the Data API page limit for channels.list by id.
const maxChannelLookup = 50

// FilterDomestic applies the two-pass locale-authenticity filter.
// Pass one keeps items whose title or channel name has locale script.
// Pass two drops items whose channel country is set and differs from the
// target; a lookup failure keeps the pass-one survivors.
func FilterDomestic(ctx context.Context, cands []SearchCandidate, loc Locale, lookup CountryLookup) []SearchCandidate {
	scripted := make([]SearchCandidate, 0, len(cands))
	for _, c := range cands {
		if loc.HasScript(c.Item.Title) || loc.HasScript(c.ChannelTitle) {
			scripted = append(scripted, c)
		}
	}
	if len(scripted) == 0 || lookup == nil {
		return scripted
	}

	seen := make(map[string]bool, len(scripted))
	var ids []string
	for _, c := range scripted {
		if c.ChannelID == "" || seen[c.ChannelID] {
			continue
		}
		seen[c.ChannelID] = true
		ids = append(ids, c.ChannelID)
	}
	if len(ids) > maxChannelLookup {
		ids = ids[:maxChannelLookup]
	}
	if len(ids) == 0 {
		return scripted
	}

	countries, err := lookup(ctx, ids)
	if err != nil {
		slog.Warn("locale: channel country check failed, keeping script filter only", slog.Any("error", err))
		return scripted
	}

	out := make([]SearchCandidate, 0, len(scripted))
	for _, c := range scripted {
		if country := countries[c.ChannelID]; country != "" && !strings.EqualFold(country, loc.Country) {
			continue
		}
		out = append(out, c)
	}
	return out
}
