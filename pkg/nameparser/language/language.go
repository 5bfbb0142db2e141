// Package language holds the per-language word tables the mappers consult:
// salutations, suffixes, lastname prefixes, nobility extensions, titles and
// company markers. Each table maps a lower-case key to its display form.
package language

import "maps"

// Provider supplies the six word tables of one language.
type Provider interface {
	Salutations() map[string]string
	Suffixes() map[string]string
	LastnamePrefixes() map[string]string
	Extensions() map[string]string
	Titles() map[string]string
	Companies() map[string]string
}

// Language is a Provider backed by plain maps, as loaded from YAML.
type Language struct {
	Name               string            `yaml:"name"`
	SalutationTable    map[string]string `yaml:"salutations"`
	SuffixTable        map[string]string `yaml:"suffixes"`
	PrefixTable        map[string]string `yaml:"lastname_prefixes"`
	ExtensionTable     map[string]string `yaml:"extensions"`
	AcademicTitles     map[string]string `yaml:"academic_titles"`
	ProfessionalTitles map[string]string `yaml:"professional_titles"`
	CompanyTable       map[string]string `yaml:"companies"`
}

func (l *Language) Salutations() map[string]string      { return l.SalutationTable }
func (l *Language) Suffixes() map[string]string         { return l.SuffixTable }
func (l *Language) LastnamePrefixes() map[string]string { return l.PrefixTable }
func (l *Language) Extensions() map[string]string       { return l.ExtensionTable }
func (l *Language) Companies() map[string]string        { return l.CompanyTable }

// Titles is the union of academic and professional titles.
func (l *Language) Titles() map[string]string {
	titles := make(map[string]string, len(l.AcademicTitles)+len(l.ProfessionalTitles))
	maps.Copy(titles, l.AcademicTitles)
	maps.Copy(titles, l.ProfessionalTitles)
	return titles
}

// Tables are the merged, sorted tables of one or more providers.
type Tables struct {
	Salutations      *Table
	Suffixes         *Table
	LastnamePrefixes *Table
	Extensions       *Table
	Titles           *Table
	Companies        *Table
}

// Merge unions the tables of providers in order. On a key collision the
// later provider's entry replaces the earlier one. With no providers every
// table is empty and every lookup misses.
func Merge(providers ...Provider) Tables {
	union := func(get func(Provider) map[string]string) *Table {
		m := make(map[string]string)
		for _, p := range providers {
			if p == nil {
				continue
			}
			maps.Copy(m, get(p))
		}
		return NewTable(m)
	}

	return Tables{
		Salutations:      union(Provider.Salutations),
		Suffixes:         union(Provider.Suffixes),
		LastnamePrefixes: union(Provider.LastnamePrefixes),
		Extensions:       union(Provider.Extensions),
		Titles:           union(Provider.Titles),
		Companies:        union(Provider.Companies),
	}
}
