// Package nameparser splits a personal or company name into its parts:
// salutation, titles, given names, initials, nickname, lastname prefix,
// lastname, nobility extension, suffix, or company.
//
// Words are classified by an ordered list of mappers. Commas switch to a
// "Lastname, Firstname, Suffix" reading in which each segment gets its own
// list of mappers. All lookups are driven by language tables; see the
// language package for the built-in German and English ones.
package nameparser

import (
	"strings"
	"sync"

	"github.com/cognicore/nameparser/pkg/nameparser/language"
	"github.com/cognicore/nameparser/pkg/nameparser/mapper"
	"github.com/cognicore/nameparser/pkg/nameparser/normalize"
	"github.com/cognicore/nameparser/pkg/nameparser/part"
)

// Options configures a Parser.
type Options struct {
	// Languages supply the lookup tables. Later languages override earlier
	// ones on identical keys. With no languages every lookup misses and only
	// the positional rules apply.
	Languages []language.Provider

	// Whitespace lists the characters that separate words.
	Whitespace string

	// NicknameDelimiters maps opening to closing wrappers. Empty means
	// mapper.DefaultNicknameDelimiters.
	NicknameDelimiters map[string]string

	// MaxSalutationIndex bounds how many leading words may be a
	// salutation. Zero means the first half of the words.
	MaxSalutationIndex int

	// MaxCombinedInitials is the longest upper-case run, such as "JM", read
	// as several initials. Values below 2 disable combined initials.
	MaxCombinedInitials int
}

// DefaultOptions returns German tables with the standard settings.
func DefaultOptions() Options {
	return Options{
		Languages:           []language.Provider{language.German()},
		Whitespace:          normalize.DefaultWhitespace,
		MaxCombinedInitials: 2,
	}
}

// Parser is immutable after New and safe for concurrent use.
type Parser struct {
	opts       Options
	tables     language.Tables
	normalizer *normalize.Normalizer
	company    *mapper.Company

	single   *mapper.Pipeline
	surname  *mapper.Pipeline
	given    *mapper.Pipeline
	trailing *mapper.Pipeline
}

// New builds the mapper pipelines for opts.
func New(opts Options) *Parser {
	tables := language.Merge(opts.Languages...)
	p := &Parser{
		opts:       opts,
		tables:     tables,
		normalizer: normalize.New(opts.Whitespace),
		company:    mapper.NewCompany(tables.Companies),
	}

	extension := mapper.NewExtension(tables.Extensions)
	title := mapper.NewMultipart(tables.Titles, part.Title)
	prefix := mapper.NewMultipart(tables.LastnamePrefixes, part.LastnamePrefix)
	nickname := mapper.NewNickname(opts.NicknameDelimiters)
	salutation := mapper.NewSalutation(tables.Salutations, opts.MaxSalutationIndex)

	p.single = mapper.NewPipeline(
		extension,
		title,
		prefix,
		nickname,
		salutation,
		mapper.NewSuffix(tables.Suffixes, false, 2),
		mapper.NewInitial(opts.MaxCombinedInitials, false),
		mapper.NewLastname(false),
		mapper.NewFirstname(),
		mapper.NewMiddlename(false),
	)
	p.surname = mapper.NewPipeline(
		extension,
		title,
		prefix,
		salutation,
		mapper.NewSuffix(tables.Suffixes, false, 2),
		mapper.NewLastname(true),
		mapper.NewFirstname(),
		mapper.NewMiddlename(false),
	)
	p.given = mapper.NewPipeline(
		extension,
		title,
		prefix,
		salutation,
		mapper.NewSuffix(tables.Suffixes, true, 1),
		nickname,
		mapper.NewInitial(opts.MaxCombinedInitials, true),
		mapper.NewFirstname(),
		mapper.NewMiddlename(true),
	)
	p.trailing = mapper.NewPipeline(
		mapper.NewSuffix(tables.Suffixes, true, 0),
	)
	return p
}

// Options returns the options the parser was built with.
func (p *Parser) Options() Options {
	return p.opts
}

// Tables returns the merged lookup tables.
func (p *Parser) Tables() language.Tables {
	return p.tables
}

// Normalize returns input as the parser sees it before splitting.
func (p *Parser) Normalize(input string) string {
	return p.normalizer.Normalize(input)
}

// Parse classifies input. It never fails; words no rule claims stay in
// the result as unclassified elements.
func (p *Parser) Parse(input string) *Name {
	normalized := p.normalizer.Normalize(input)
	segments := splitSegments(normalized)

	if len(segments) == 1 {
		if p.company.Match(normalized) {
			return newName(part.Sequence{
				part.NewWithCanonical(part.Company, normalized, normalized),
			})
		}
		return newName(p.single.Run(part.Tokens(words(normalized), 0)))
	}

	pipelines := []*mapper.Pipeline{p.surname, p.given, p.trailing}
	var out part.Sequence
	offset := 0
	for i, seg := range segments {
		w := words(seg)
		out = append(out, pipelines[i].Run(part.Tokens(w, offset))...)
		offset += len(w)
	}
	return newName(out)
}

// splitSegments cuts s at the first two commas. Text after a third comma
// stays in the last segment with its commas turned into spaces.
func splitSegments(s string) []string {
	segments := strings.SplitN(s, ",", 3)
	if len(segments) == 3 {
		segments[2] = strings.ReplaceAll(segments[2], ",", " ")
	}
	return segments
}

// words splits a normalized segment at the single spaces normalization
// leaves between words.
func words(s string) []string {
	fields := strings.Split(s, " ")
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

var (
	defaultOnce   sync.Once
	defaultParser *Parser
)

// Default returns a shared parser built from DefaultOptions.
func Default() *Parser {
	defaultOnce.Do(func() {
		defaultParser = New(DefaultOptions())
	})
	return defaultParser
}

// Parse classifies input with the default parser.
func Parse(input string) *Name {
	return Default().Parse(input)
}
