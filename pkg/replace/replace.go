// Package replace implements the regex substitution engine: one compiled
// pattern plus a replacement template, applied to whole file contents.
package replace

import (
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Match records a single replacement for reporting and logging.
type Match struct {
	Old string // the matched substring as found in the content
	New string // the template applied to the matched substring in isolation
}

// 🎯 Engine holds a compiled pattern and its translated template.
type Engine struct {
	re       *regexp.Regexp
	template string
}

// 🏭 NewEngine compiles the pattern once. An invalid pattern fails here,
// before any file is touched.
func NewEngine(pattern, template string) (*Engine, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern: %w", err)
	}
	return &Engine{
		re:       re,
		template: translateTemplate(template, re.NumSubexp()),
	}, nil
}

// 🔍 Process finds all leftmost non-overlapping matches in content and
// returns the per-match records plus the globally substituted content.
// Zero matches returns a nil slice and the content unchanged.
//
// Each Match.New is computed by re-applying the template to the matched
// substring on its own, not by slicing the substituted content. For
// templates or patterns that depend on surrounding context the two can
// diverge; the recorded value is meant for log readability, not diffing.
func (e *Engine) Process(content string) ([]Match, string) {
	found := e.re.FindAllString(content, -1)
	if len(found) == 0 {
		return nil, content
	}

	matches := make([]Match, 0, len(found))
	for _, old := range found {
		matches = append(matches, Match{
			Old: old,
			New: e.re.ReplaceAllString(old, e.template),
		})
	}

	return matches, e.re.ReplaceAllString(content, e.template)
}

// 📝 Pattern returns the source text of the compiled pattern.
func (e *Engine) Pattern() string {
	return e.re.String()
}

// translateTemplate converts a template with `\1`-style numbered
// backreferences into the `${n}` expansion syntax understood by
// regexp.Regexp.ReplaceAllString. A literal `$` in the template is
// escaped so it stays literal, and `\\` produces a single backslash.
// A backreference consumes consecutive digits greedily as long as the
// resulting group number stays within the pattern's group count, so
// `\10` means group 10 when the pattern defines ten groups and group 1
// followed by a literal `0` otherwise.
func translateTemplate(template string, groups int) string {
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '$':
			b.WriteString("$$")
		case c == '\\' && i+1 < len(template):
			next := template[i+1]
			switch {
			case next >= '0' && next <= '9':
				num := int(next - '0')
				j := i + 2
				for num > 0 && j < len(template) && template[j] >= '0' && template[j] <= '9' {
					extended := num*10 + int(template[j]-'0')
					if extended > groups {
						break
					}
					num = extended
					j++
				}
				b.WriteString("${")
				b.WriteString(strconv.Itoa(num))
				b.WriteByte('}')
				i = j - 1
			case next == '\\':
				b.WriteByte('\\')
				i++
			default:
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
