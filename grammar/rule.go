package grammar

import (
	"fmt"
	"regexp"
)

type SchemaMismatchError struct {
	Rule string
	Want int
	Got  int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("rule %s: captured %d fields, schema declares %d", e.Rule, e.Got, e.Want)
}

// FieldError reports a token that could not be coerced to its field's type.
type FieldError struct {
	Rule  string
	Field string
	Token string
	err   error
}

func (e *FieldError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("rule %s: field %s %q: %s", e.Rule, e.Field, e.Token, e.err)
	}
	return fmt.Sprintf("rule %s: field %s %q: not a number", e.Rule, e.Field, e.Token)
}

func (e *FieldError) Unwrap() error { return e.err }

type rule struct {
	name   string
	re     *regexp.Regexp
	fields []string
}

// newRule panics if the pattern's groups disagree with fields.
func newRule(name, pattern string, fields ...string) *rule {
	re := regexp.MustCompile(pattern)
	if re.NumSubexp() != len(fields) {
		panic(fmt.Sprintf("grammar: rule %s has %d groups for %d fields", name, re.NumSubexp(), len(fields)))
	}
	return &rule{name: name, re: re, fields: fields}
}

// match searches s from pos on. Offsets in the result are relative to s.
func (r *rule) match(s string, pos int) *match {
	loc := r.re.FindStringSubmatchIndex(s[pos:])
	if loc == nil {
		return nil
	}
	for i := range loc {
		if loc[i] >= 0 {
			loc[i] += pos
		}
	}
	return &match{rule: r, src: s, loc: loc}
}

type match struct {
	rule *rule
	src  string
	loc  []int
}

func (m *match) start() int { return m.loc[0] }

func (m *match) end() int { return m.loc[1] }

// groups returns the captured fields keyed by name.
func (m *match) groups() (map[string]string, error) {
	n := len(m.loc)/2 - 1
	if n != len(m.rule.fields) {
		return nil, &SchemaMismatchError{Rule: m.rule.name, Want: len(m.rule.fields), Got: n}
	}
	res := make(map[string]string, n)
	for i, f := range m.rule.fields {
		s, e := m.loc[2*i+2], m.loc[2*i+3]
		if s < 0 {
			res[f] = ""
			continue
		}
		res[f] = m.src[s:e]
	}
	return res, nil
}
