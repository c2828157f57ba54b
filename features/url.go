package features

import (
	"hybrid-guard/domain"
	"regexp"
	"strings"
	"unicode/utf8"
)

// \d is ASCII only in RE2: a quad written in other scripts' digits is not an IP.
var dottedQuad = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)

const (
	shortURLLength  = 54
	mediumURLLength = 75
	redirectOffset  = 7
)

// ExtractURLFeatures derives the six lexical features from a raw URL string.
// It never fails: a missing delimiter simply selects the safe branch of a rule.
func ExtractURLFeatures(url string) domain.URLFeatureSet {
	host := hostPart(url)
	return domain.URLFeatureSet{
		HavingIPAddress:        havingIPAddress(url),
		URLLength:              urlLength(url),
		HavingAtSymbol:         signIf(!strings.Contains(url, "@")),
		DoubleSlashRedirecting: signIf(!doubleSlashAfter(url, redirectOffset)),
		PrefixSuffix:           signIf(!strings.Contains(host, "-")),
		HavingSubDomain:        subDomain(host),
	}
}

// havingIPAddress uses the reversed sign convention: an IP is the "1" branch.
func havingIPAddress(url string) int {
	if dottedQuad.MatchString(url) {
		return 1
	}
	return -1
}

func urlLength(url string) int {
	n := utf8.RuneCountInString(url)
	switch {
	case n < shortURLLength:
		return 1
	case n <= mediumURLLength:
		return 0
	default:
		return -1
	}
}

// doubleSlashAfter reports whether "//" starts at or after the given character offset.
func doubleSlashAfter(url string, offset int) bool {
	runes := []rune(url)
	if offset >= len(runes) {
		return false
	}
	return strings.Contains(string(runes[offset:]), "//")
}

func subDomain(host string) int {
	switch strings.Count(host, ".") {
	case 1:
		return 1
	case 2:
		return 0
	default:
		return -1
	}
}

// hostPart is everything before the first '/', or the whole string without one.
// A leading "scheme://" is skipped so that "http://a-b.com/x" yields "a-b.com".
func hostPart(url string) string {
	if scheme, rest, ok := strings.Cut(url, "://"); ok && isScheme(scheme) {
		url = rest
	}
	host, _, _ := strings.Cut(url, "/")
	return host
}

func isScheme(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func signIf(safe bool) int {
	if safe {
		return 1
	}
	return -1
}
