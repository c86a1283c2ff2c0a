// Package classify holds the health-doc rule table, the commit classifier and the
// identity resolver. Every engine goes through the same compiled *Rules.
package classify

import (
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// RulesVersion names the revision of the include and exclude tables.
// Bump it whenever a pattern changes so cached results are not reused.
const RulesVersion = "2024.1-strict"

var rootHealthNames = []string{
	"README", "CONTRIBUTING", "CONTRIBUTORS", "COMMIT_CONVENTIONS", "PULL_REQUEST_TEMPLATE",
	"ISSUE_TEMPLATE", "BUILDING", "CHANGELOG", "HISTORY", "RELEASES?", "CODE_OF_CONDUCT",
	"GOVERNANCE", "SUPPORT", "MAINTAINERS", "SECURITY", "LICENSE", "NOTICE", "COPYING",
	"AUTHORS", "CREDITS", "THANKS", "ROADMAP", "VISION",
}

var githubHealthNames = []string{
	"SECURITY", "CONTRIBUTING", "CODE_OF_CONDUCT", "SUPPORT", "COMMIT_CONVENTIONS",
	"PULL_REQUEST_TEMPLATE", "ISSUE_TEMPLATE", "BUILDING",
}

var gitlabHealthNames = []string{
	"CONTRIBUTING", "CODE_OF_CONDUCT", "COMMIT_CONVENTIONS",
	"PULL_REQUEST_TEMPLATE", "ISSUE_TEMPLATE", "BUILDING",
}

// IncludePatterns are anchored, case-insensitive matches for health docs.
var IncludePatterns = buildIncludePatterns()

func buildIncludePatterns() []string {
	var out []string
	add := func(dir string, names []string) {
		for _, n := range names {
			out = append(out, `^`+regexp.QuoteMeta(dir)+n+`(?:\..+)?$`)
		}
	}
	add("", rootHealthNames)
	add(".github/", githubHealthNames)
	add(".gitlab/", gitlabHealthNames)
	return out
}

// ExcludePatterns are searched anywhere in the normalized path, case-insensitively.
var ExcludePatterns = []string{
	// two or more directory levels
	`^[^/]+/[^/]+/`,

	// component roots
	`^libs/`, `^modules/`, `^x-pack/`, `^plugins?/`, `^packages?/`, `^distribution/`,
	`^build-tools`, `^qa/`, `^test/`, `^benchmarks?/`, `^src/`, `/src/`,

	// build and dependency output
	`(^|/)node_modules/`, `(^|/)vendor/`, `(^|/)dist/`, `(^|/)build/`, `(^|/)site/`,
	`(^|/)out/`, `(^|/)target/`, `(^|/)\.git/`,

	// technical documentation
	`(^|/)docs?/`, `(^|/)documentation/`, `(^|/)wiki/`, `(^|/)guides?/`, `(^|/)tutorials?/`,
	`(^|/)examples?/`, `(^|/)man/`, `(^|/)api/`, `(^|/)reference/`,

	// media, archives, binaries
	`\.(png|jpg|jpeg|gif|svg|ico|pdf)$`,
	`\.(zip|tar|gz|bz2|7z|rar)$`,
	`\.(exe|dll|so|dylib|bin)$`,

	// source code
	`\.(java|py|js|ts|go|rs|cpp|c|h|hpp)$`,
	`\.(scala|kt|swift|rb|php|cs|fs)$`,

	// tests and resources
	`(^|/)test/`, `(^|/)tests/`, `/resources/`, `\.(cef|json|xml|yaml|yml)\.txt$`,

	// build configuration
	`(^|/)conf\.py$`, `(^|/)_config\.yml$`, `(^|/)mkdocs\.yml$`, `(^|/)Doxyfile$`, `output\.txt$`,

	// translations
	`/translations?/`, `/i18n/`, `/locales?/`, `\.(zh|ja|ko|fr|de|es|it|pt|ru)\.md$`,
}

// Rules is a compiled include/exclude table. It is safe for concurrent use.
type Rules struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// Compile builds a Rules from pattern lists. Patterns are made case-insensitive.
func Compile(include, exclude []string) (*Rules, error) {
	r := &Rules{}
	for _, p := range include {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, err
		}
		r.include = append(r.include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, err
		}
		r.exclude = append(r.exclude, re)
	}
	return r, nil
}

var (
	defaultRules     *Rules
	defaultRulesOnce sync.Once
)

// Default returns the shared rule table built from IncludePatterns and ExcludePatterns.
func Default() *Rules {
	defaultRulesOnce.Do(func() {
		r, err := Compile(IncludePatterns, ExcludePatterns)
		if err != nil {
			panic("classify: invalid built-in pattern: " + err.Error())
		}
		defaultRules = r
	})
	return defaultRules
}

// NormalizePath canonicalizes a path as printed by git.
// Separators become "/" and a rename like "{old => new}" keeps only the new side.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.ReplaceAll(p, `\`, "/")
	if i := strings.LastIndex(p, "=>"); i >= 0 {
		p = strings.TrimFunc(p[i+2:], func(r rune) bool {
			return r == '{' || r == '}' || unicode.IsSpace(r)
		})
	}
	return p
}

// IsIncluded reports whether the normalized path matches a health-doc name.
func (r *Rules) IsIncluded(path string) bool {
	for _, re := range r.include {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the normalized path matches any exclusion.
func (r *Rules) IsExcluded(path string) bool {
	for _, re := range r.exclude {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// IsHealthDoc normalizes path and classifies it. Exclusion wins over inclusion.
func (r *Rules) IsHealthDoc(path string) bool {
	p := NormalizePath(path)
	if p == "" || r.IsExcluded(p) {
		return false
	}
	return r.IsIncluded(p)
}

// IsHealthDoc classifies path against the default rule table.
func IsHealthDoc(path string) bool {
	return Default().IsHealthDoc(path)
}
