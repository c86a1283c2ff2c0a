package classify

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// DefaultBotPatterns are the signatures tested against "name <email>".
var DefaultBotPatterns = []string{
	`\bbot\b`, `\bbots\b`, `github-actions`, `dependabot`, `renovate`, `greenkeeper`,
	`codecov`, `coveralls`, `travis-ci`, `circleci`, `jenkins`, `azure-pipelines`,
	`\bbors\b`, `homu`, `mergify`, `kodiak`, `auto-merge`, `rust-timer`, `rustbot`,
	`rust-highfive`, `kubernetes-`, `k8s-ci-robot`, `automation`,
	`\[bot\]`, `\(bot\)`, `service account`, `noreply@`, `github\.com`, `automated`,
	`version-bump`, `release-bot`, `changelog-bot`, `homebrew-`, `allcontributors`,
}

var (
	noreplyRe    = regexp.MustCompile(`^\d+\+(.+@users\.noreply\.[^@]+)$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NameKeyPrefix marks identities keyed on the author name because no email was recorded.
const NameKeyPrefix = "name:"

// ResolveIdentity maps an author to a stable contributor key.
// Email wins when present; GitHub's numbered noreply addresses collapse to the plain form.
func ResolveIdentity(name, email string) string {
	e := strings.ToLower(strings.TrimSpace(email))
	if e != "" {
		if m := noreplyRe.FindStringSubmatch(e); m != nil {
			return m[1]
		}
		return e
	}
	n := strings.ToLower(strings.TrimSpace(whitespaceRe.ReplaceAllString(name, " ")))
	return NameKeyPrefix + n
}

type botPattern struct {
	raw string
	re  *regexp.Regexp
}

// BotDetector flags automation accounts.
type BotDetector struct {
	patterns []botPattern
}

// NewBotDetector compiles DefaultBotPatterns followed by any extra signatures.
func NewBotDetector(extra []string) (*BotDetector, error) {
	d := &BotDetector{}
	for _, p := range append(slices.Clone(DefaultBotPatterns), extra...) {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("invalid bot pattern %q: %w", p, err)
		}
		d.patterns = append(d.patterns, botPattern{raw: p, re: re})
	}
	return d, nil
}

// BotSample renders the string the signatures are tested against.
func BotSample(name, email string) string {
	return strings.TrimSpace(name) + " <" + strings.TrimSpace(email) + ">"
}

// LooksLikeBot reports whether any signature matches the author.
func (d *BotDetector) LooksLikeBot(name, email string) bool {
	s := BotSample(name, email)
	for _, p := range d.patterns {
		if p.re.MatchString(s) {
			return true
		}
	}
	return false
}

// MatchedPatterns returns the raw signatures that match, in table order.
func (d *BotDetector) MatchedPatterns(name, email string) []string {
	s := BotSample(name, email)
	var out []string
	for _, p := range d.patterns {
		if p.re.MatchString(s) {
			out = append(out, p.raw)
		}
	}
	return out
}
