package templates

import "regexp"

// placeholderPattern matches {name} and {?name}. The optional "?" sigil is
// captured separately so a single scan classifies both kinds.
var placeholderPattern = regexp.MustCompile(`\{(\?)?([\w-]+)\}`)

// Kind distinguishes plain from encrypted placeholders.
type Kind int

const (
	// Plain placeholders ({name}) are replaced by the stored string verbatim.
	Plain Kind = iota
	// Encrypted placeholders ({?name}) are replaced by the decrypted token.
	Encrypted
)

func (k Kind) String() string {
	if k == Encrypted {
		return "encrypted"
	}
	return "plain"
}

// Placeholder is one occurrence of a placeholder in a template.
// Start and End are byte offsets of the full "{...}" match.
type Placeholder struct {
	Name  string
	Kind  Kind
	Start int
	End   int
}

// Scan returns every placeholder occurrence in template, left to right.
// Repeated names appear once per occurrence.
func Scan(template string) []Placeholder {
	matches := placeholderPattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return nil
	}

	placeholders := make([]Placeholder, 0, len(matches))
	for _, m := range matches {
		p := Placeholder{
			Name:  template[m[4]:m[5]],
			Kind:  Plain,
			Start: m[0],
			End:   m[1],
		}
		if m[2] >= 0 {
			p.Kind = Encrypted
		}
		placeholders = append(placeholders, p)
	}
	return placeholders
}

// ExtractPlain returns the names of all {name} occurrences in scan order.
func ExtractPlain(template string) []string {
	return extract(template, Plain)
}

// ExtractEncrypted returns the names of all {?name} occurrences in scan order,
// without the sigil.
func ExtractEncrypted(template string) []string {
	return extract(template, Encrypted)
}

// HasEncrypted reports whether template contains at least one {?name}.
func HasEncrypted(template string) bool {
	for _, p := range Scan(template) {
		if p.Kind == Encrypted {
			return true
		}
	}
	return false
}

func extract(template string, kind Kind) []string {
	var names []string
	for _, p := range Scan(template) {
		if p.Kind == kind {
			names = append(names, p.Name)
		}
	}
	return names
}
