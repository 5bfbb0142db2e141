package nameparser

import "strings"

// ContactRecord holds the name properties of a vCard (RFC 6350).
type ContactRecord struct {
	FamilyName        string `json:"family_name" yaml:"family_name"`
	GivenName         string `json:"given_name" yaml:"given_name"`
	AdditionalNames   string `json:"additional_names" yaml:"additional_names"`
	HonorificPrefixes string `json:"honorific_prefixes" yaml:"honorific_prefixes"`
	HonorificSuffixes string `json:"honorific_suffixes" yaml:"honorific_suffixes"`

	FormattedName string `json:"formatted_name" yaml:"formatted_name"`
	Nickname      string `json:"nickname,omitempty" yaml:"nickname,omitempty"`
	Organization  string `json:"organization,omitempty" yaml:"organization,omitempty"`
}

// ContactRecord exports n as vCard properties. With prefixInFamily the
// lastname prefix is part of the family name ("Mac Dougall;Richard;;;");
// otherwise it is reported among the honorific suffixes
// ("Bismarck;Otto;;;von"). A company only fills the formatted name and the
// organization.
func (n *Name) ContactRecord(prefixInFamily bool) ContactRecord {
	if company := n.Company(); company != "" {
		return ContactRecord{
			FormattedName: company,
			Nickname:      n.Nickname(),
			Organization:  company,
		}
	}

	family, prefix := n.LastnameOnly(), n.LastnamePrefix()
	if prefixInFamily {
		family, prefix = n.Lastname(), ""
	}
	return ContactRecord{
		FamilyName: family,
		GivenName:  n.Firstname(),
		AdditionalNames: joinNonEmpty(",",
			strings.ReplaceAll(n.Middlename(), " ", ","),
			n.Initials(),
		),
		HonorificPrefixes: joinNonEmpty(",", n.Salutation(), n.Title()),
		HonorificSuffixes: joinNonEmpty(",", n.Extension(), prefix, n.Suffix()),
		FormattedName:     n.CompleteName(),
		Nickname:          n.Nickname(),
	}
}

// N renders the five structured name components separated by semicolons,
// or "" for a company. Family and given name are escaped as text values; the
// three list components keep their "," separators.
func (c ContactRecord) N() string {
	if c.Organization != "" && c.FamilyName == "" && c.GivenName == "" {
		return ""
	}
	return strings.Join([]string{
		escapeText(c.FamilyName),
		escapeText(c.GivenName),
		listEscaper.Replace(c.AdditionalNames),
		listEscaper.Replace(c.HonorificPrefixes),
		listEscaper.Replace(c.HonorificSuffixes),
	}, ";")
}

// VCard renders a minimal vCard 4.0 carrying the name properties.
func (c ContactRecord) VCard() string {
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\r\nVERSION:4.0\r\n")
	b.WriteString("FN:" + escapeText(c.FormattedName) + "\r\n")
	if n := c.N(); n != "" {
		b.WriteString("N:" + n + "\r\n")
	}
	if c.Nickname != "" {
		b.WriteString("NICKNAME:" + escapeText(c.Nickname) + "\r\n")
	}
	if c.Organization != "" {
		b.WriteString("ORG:" + escapeText(c.Organization) + "\r\n")
	}
	b.WriteString("END:VCARD\r\n")
	return b.String()
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ",", `\,`, ";", `\;`, "\n", `\n`)

// listEscaper leaves "," alone because it separates list values.
var listEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, "\n", `\n`)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
