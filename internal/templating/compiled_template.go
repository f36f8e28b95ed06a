// Package templating renders command line templates such as `{{ binary }} run -c {{ config }} --json {{ args }}`.
package templating

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rwx-research/testrig-cli/internal/errors"
)

var (
	placeholderRegexp = regexp.MustCompile(`({{\s?\w+\s?}})`)
	keywordRegexp     = regexp.MustCompile(`^{{\s?(\w+)\s?}}$`)
)

type CompiledTemplate struct {
	Template             string
	PlaceholderToKeyword map[string]string
}

func CompileTemplate(template string) (CompiledTemplate, error) {
	placeholders := placeholderRegexp.FindAllString(template, -1)
	if len(placeholders) == 0 {
		return CompiledTemplate{Template: template, PlaceholderToKeyword: map[string]string{}}, nil
	}

	placeholderToKeyword := make(map[string]string, len(placeholders))
	seen := make(map[string]struct{}, len(placeholders))
	for _, placeholder := range placeholders {
		submatches := keywordRegexp.FindStringSubmatch(placeholder)
		if len(submatches) != 2 {
			return CompiledTemplate{}, errors.NewInputError("template included a malformed placeholder '%v'", placeholder)
		}

		keyword := submatches[1]
		if _, ok := seen[keyword]; ok {
			return CompiledTemplate{}, errors.NewInputError(
				"template requested duplicate substitution of placeholder '%v'",
				keyword,
			)
		}
		seen[keyword] = struct{}{}
		placeholderToKeyword[placeholder] = keyword
	}

	return CompiledTemplate{Template: template, PlaceholderToKeyword: placeholderToKeyword}, nil
}

// Keywords returns the sorted keywords used by the template.
func (ct CompiledTemplate) Keywords() []string {
	keywords := make([]string, 0, len(ct.PlaceholderToKeyword))
	for _, keyword := range ct.PlaceholderToKeyword {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	return keywords
}

// Substitute replaces every placeholder with its value. Every keyword of the template needs to be present in the
// lookup, an empty value is fine.
func (ct CompiledTemplate) Substitute(substitutionLookup map[string]string) (string, error) {
	missing := make([]string, 0)
	for _, keyword := range ct.Keywords() {
		if _, ok := substitutionLookup[keyword]; !ok {
			missing = append(missing, keyword)
		}
	}

	if len(missing) > 0 {
		return "", errors.NewInputError("template is missing values for %s", strings.Join(missing, ", "))
	}

	// A single pass, so placeholders inside substituted values are left alone.
	substituted := placeholderRegexp.ReplaceAllStringFunc(ct.Template, func(placeholder string) string {
		keyword, ok := ct.PlaceholderToKeyword[placeholder]
		if !ok {
			return placeholder
		}

		return substitutionLookup[keyword]
	})

	return strings.TrimSpace(substituted), nil
}
