// FILE: pkg/answer/relevance/tables.go
// PURPOSE: Static domain-trust and source-type tables (ordered, first match wins)

package relevance

// SourceType classifies a citation URL by the kind of site it points to.
type SourceType string

const (
	SourceOfficial      SourceType = "official"
	SourceNews          SourceType = "news"
	SourceAcademic      SourceType = "academic"
	SourceSocial        SourceType = "social"
	SourceEntertainment SourceType = "entertainment"
	SourceBlog          SourceType = "blog"
	SourceWiki          SourceType = "wiki"
	SourceTech          SourceType = "tech"
	SourceGeneral       SourceType = "general"
	SourceUnknown       SourceType = "unknown"
)

// DomainTrust is one entry of the trust table. Order matters for substring matching.
type DomainTrust struct {
	Domain string  `yaml:"domain"`
	Score  float64 `yaml:"score"`
}

// TypePattern maps URL substrings to a source type. Order matters.
type TypePattern struct {
	Type     SourceType
	Patterns []string
}

// Tables holds the read-only lookup data used by a Scorer.
type Tables struct {
	DomainTrust  []DomainTrust
	TypePatterns []TypePattern
	TypeScores   map[SourceType]float64

	exact map[string]float64
}

const (
	defaultDomainScore   = 50.0
	malformedDomainScore = 30.0
	unknownTypeScore     = 50.0
)

var defaultDomainTrust = []DomainTrust{
	// high trust
	{"wikipedia.org", 95},
	{"ko.wikipedia.org", 95},
	{"naver.com", 90},
	{"daum.net", 90},
	{"gov.kr", 100},
	{"go.kr", 100},
	{"edu", 95},
	{"ac.kr", 95},
	{"or.kr", 85},

	// medium trust
	{"news.naver.com", 85},
	{"news.daum.net", 85},
	{"ytn.co.kr", 80},
	{"kbs.co.kr", 85},
	{"sbs.co.kr", 85},
	{"mbc.co.kr", 85},
	{"chosun.com", 80},
	{"joongang.co.kr", 80},
	{"hankyung.com", 75},
	{"khan.co.kr", 75},
	{"hani.co.kr", 75},
	{"github.com", 85},
	{"stackoverflow.com", 80},
	{"docs.microsoft.com", 85},
	{"docs.python.org", 90},

	// low trust
	{"blog.naver.com", 50},
	{"tistory.com", 45},
	{"youtube.com", 30},
	{"instagram.com", 20},
	{"facebook.com", 25},
	{"twitter.com", 35},
	{"tiktok.com", 15},
	{"spotify.com", 20},
	{"pinterest.com", 25},
	{"reddit.com", 40},
}

var defaultTypePatterns = []TypePattern{
	{SourceOfficial, []string{"gov.kr", "go.kr", "company.com", "organization.org", "docs.", "microsoft.com", "google.com", "apple.com"}},
	{SourceNews, []string{"news.", "press.", "media.", "ytn.co.kr", "kbs.co.kr", "sbs.co.kr", "mbc.co.kr", "chosun.com", "joongang.co.kr"}},
	{SourceAcademic, []string{"edu", "ac.kr", "scholar.", "research.", "ieee.org", "acm.org", "arxiv.org"}},
	{SourceSocial, []string{"instagram.com", "facebook.com", "twitter.com", "tiktok.com", "pinterest.com"}},
	{SourceEntertainment, []string{"youtube.com", "spotify.com", "netflix.com", "twitch.tv"}},
	{SourceBlog, []string{"blog.", "tistory.com", "wordpress.com", "medium.com"}},
	{SourceWiki, []string{"wikipedia.org", "namuwiki.com"}},
	{SourceTech, []string{"github.com", "stackoverflow.com", "dev.to", "docs."}},
}

var defaultTypeScores = map[SourceType]float64{
	SourceOfficial:      90,
	SourceAcademic:      85,
	SourceNews:          80,
	SourceWiki:          85,
	SourceTech:          75,
	SourceGeneral:       60,
	SourceBlog:          40,
	SourceSocial:        20,
	SourceEntertainment: 15,
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	trust := make([]DomainTrust, len(defaultDomainTrust))
	copy(trust, defaultDomainTrust)

	patterns := make([]TypePattern, len(defaultTypePatterns))
	copy(patterns, defaultTypePatterns)

	scores := make(map[SourceType]float64, len(defaultTypeScores))
	for k, v := range defaultTypeScores {
		scores[k] = v
	}

	return NewTables(trust, patterns, scores)
}

// NewTables builds Tables and indexes the trust table for exact lookups.
func NewTables(trust []DomainTrust, patterns []TypePattern, scores map[SourceType]float64) Tables {
	exact := make(map[string]float64, len(trust))
	for _, t := range trust {
		if _, seen := exact[t.Domain]; !seen {
			exact[t.Domain] = t.Score
		}
	}
	return Tables{
		DomainTrust:  trust,
		TypePatterns: patterns,
		TypeScores:   scores,
		exact:        exact,
	}
}

// WithDomainTrust returns a copy of t where overrides replace existing trust
// values in place and unknown domains are appended in the given order.
func (t Tables) WithDomainTrust(overrides []DomainTrust) Tables {
	trust := make([]DomainTrust, len(t.DomainTrust))
	copy(trust, t.DomainTrust)

	index := make(map[string]int, len(trust))
	for i, entry := range trust {
		index[entry.Domain] = i
	}
	for _, o := range overrides {
		if i, ok := index[o.Domain]; ok {
			trust[i].Score = o.Score
			continue
		}
		index[o.Domain] = len(trust)
		trust = append(trust, o)
	}

	return NewTables(trust, t.TypePatterns, t.TypeScores)
}
