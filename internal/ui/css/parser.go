// Package css parses the small stylesheet dialect used by the overlay UI: .class and #id
// selectors (comma-separated lists allowed) with "key: value;" declarations. No combinators,
// no @rules. Later rules override earlier ones.
package css

import "strings"

// Rule is one selector with its raw property values.
type Rule struct {
	Selector string            // ".popup" or "#close"
	Props    map[string]string // "background" -> "#1a1a2e"
}

// Stylesheet is an ordered list of rules.
type Stylesheet struct {
	Rules []Rule
}

// Parse parses content into a stylesheet. Blocks with unsupported selectors are skipped;
// an unterminated block ends parsing.
func Parse(content string) *Stylesheet {
	sheet := &Stylesheet{}
	s := stripComments(content)
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			break
		}
		end := matchingBrace(s, open)
		if end < 0 {
			break
		}
		props := declarations(s[open+1 : end])
		for _, sel := range strings.Split(s[:open], ",") {
			sel = strings.TrimSpace(sel)
			if !validSelector(sel) {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
		s = s[end+1:]
	}
	return sheet
}

// Merge returns a stylesheet with a's rules followed by b's, so b wins on conflicts.
func Merge(a, b *Stylesheet) *Stylesheet {
	out := &Stylesheet{}
	if a != nil {
		out.Rules = append(out.Rules, a.Rules...)
	}
	if b != nil {
		out.Rules = append(out.Rules, b.Rules...)
	}
	return out
}

// Match returns the merged properties for an element with the given class and id.
// Class rules apply first, then id rules, each in sheet order.
func (s *Stylesheet) Match(class, id string) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	apply := func(want byte, name string) {
		if name == "" {
			return
		}
		for _, r := range s.Rules {
			if r.Selector[0] == want && r.Selector[1:] == name {
				for k, v := range r.Props {
					merged[k] = v
				}
			}
		}
	}
	apply('.', class)
	apply('#', id)
	return merged
}

func validSelector(sel string) bool {
	if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
		return false
	}
	return !strings.ContainsAny(sel[1:], " \t\n>+~:[.#")
}

func stripComments(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, "/*")
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		j := strings.Index(s[i+2:], "*/")
		if j < 0 {
			return b.String()
		}
		s = s[i+2+j+2:]
	}
}

func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func declarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}
