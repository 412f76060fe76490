package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version represents a parsed package version following the PEP 440 grammar
// (the versioning scheme used by the package installer that consumes the manifest).
// The zero value is not a valid version; use ParseVersion.
type Version struct {
	// Epoch is the version epoch (the "1!" in "1!2.0"). Usually zero.
	Epoch int

	// Release is the dotted numeric release segment (e.g., [1, 24, 0] for "1.24.0").
	Release []int

	// PrePhase is "a", "b" or "rc" when a pre-release suffix is present, empty otherwise.
	PrePhase string

	// PreNumber is the pre-release number, valid only when PrePhase is set.
	PreNumber int

	// Post is the post-release number, or -1 when absent.
	Post int

	// Dev is the development-release number, or -1 when absent.
	Dev int

	// Local is the local version label (the part after "+"), empty when absent.
	Local string
}

// versionPattern accepts the canonical subset of PEP 440 used by requirement
// pins: optional epoch, dotted release, optional pre/post/dev suffixes, and an
// optional local label. Input is lowercased before matching.
var versionPattern = regexp.MustCompile(
	`^(?:(\d+)!)?(\d+(?:\.\d+)*)(?:(a|b|rc)(\d+))?(?:\.post(\d+))?(?:\.dev(\d+))?(?:\+([a-z0-9]+(?:[._-][a-z0-9]+)*))?$`,
)

// wildcardPattern accepts a release prefix followed by ".*", which is legal in
// version specifiers ("1.2.*") but not as a concrete version.
var wildcardPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.\*$`)

// ParseVersion parses a version string into its components.
// Returns ErrInvalidVersion when the string does not match the grammar.
func ParseVersion(s string) (Version, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	m := versionPattern.FindStringSubmatch(normalized)
	if m == nil {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}

	v := Version{Post: -1, Dev: -1}
	var convErr error

	// The pattern only admits digit runs here, but a run can still overflow
	// int, so each conversion is checked.
	atoi := func(s string) int {
		n, err := strconv.Atoi(s)
		if err != nil && convErr == nil {
			convErr = err
		}
		return n
	}

	if m[1] != "" {
		v.Epoch = atoi(m[1])
	}
	for _, part := range strings.Split(m[2], ".") {
		v.Release = append(v.Release, atoi(part))
	}
	if m[3] != "" {
		v.PrePhase = m[3]
		v.PreNumber = atoi(m[4])
	}
	if m[5] != "" {
		v.Post = atoi(m[5])
	}
	if m[6] != "" {
		v.Dev = atoi(m[6])
	}
	v.Local = m[7]

	if convErr != nil {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}
	return v, nil
}

// IsValidVersion reports whether s is a valid concrete version.
func IsValidVersion(s string) bool {
	_, err := ParseVersion(s)
	return err == nil
}

// IsValidSpecVersion reports whether s is valid on the right-hand side of a
// version specifier. It additionally accepts trailing-wildcard forms.
func IsValidSpecVersion(s string) bool {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if wildcardPattern.MatchString(normalized) {
		return true
	}
	return IsValidVersion(s)
}

// String renders the version in canonical form.
func (v Version) String() string {
	var b strings.Builder
	if v.Epoch > 0 {
		b.WriteString(strconv.Itoa(v.Epoch))
		b.WriteByte('!')
	}
	for i, n := range v.Release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	if v.PrePhase != "" {
		b.WriteString(v.PrePhase)
		b.WriteString(strconv.Itoa(v.PreNumber))
	}
	if v.Post >= 0 {
		b.WriteString(".post")
		b.WriteString(strconv.Itoa(v.Post))
	}
	if v.Dev >= 0 {
		b.WriteString(".dev")
		b.WriteString(strconv.Itoa(v.Dev))
	}
	if v.Local != "" {
		b.WriteByte('+')
		b.WriteString(v.Local)
	}
	return b.String()
}

// Compare returns -1, 0 or 1 ordering v against other per PEP 440:
// epoch first, then the zero-padded release, then dev < pre < final < post,
// with the local label as the final tie-breaker.
func (v Version) Compare(other Version) int {
	if v.Epoch != other.Epoch {
		return compareInt(v.Epoch, other.Epoch)
	}
	if c := compareRelease(v.Release, other.Release); c != 0 {
		return c
	}
	if c := compareInt(v.preKey(), other.preKey()); c != 0 {
		return c
	}
	if v.PrePhase != "" && v.PrePhase == other.PrePhase {
		if c := compareInt(v.PreNumber, other.PreNumber); c != 0 {
			return c
		}
	}
	if c := compareInt(v.postKey(), other.postKey()); c != 0 {
		return c
	}
	if c := compareInt(v.devKey(), other.devKey()); c != 0 {
		return c
	}
	return compareLocal(v.Local, other.Local)
}

// preKey maps the pre-release segment onto a comparable rank.
// A dev release without a pre segment sorts before any pre-release.
func (v Version) preKey() int {
	switch {
	case v.PrePhase == "a":
		return 1
	case v.PrePhase == "b":
		return 2
	case v.PrePhase == "rc":
		return 3
	case v.Post < 0 && v.Dev >= 0:
		return 0
	default:
		return 4 // final release
	}
}

func (v Version) postKey() int {
	if v.Post < 0 {
		return -1
	}
	return v.Post
}

func (v Version) devKey() int {
	if v.Dev < 0 {
		return int(^uint(0) >> 1) // absence of .dev sorts after any .dev
	}
	return v.Dev
}

func compareRelease(a, b []int) int {
	// Releases compare with implicit zero padding: 1.0 == 1.0.0.
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return compareInt(av, bv)
		}
	}
	return 0
}

// compareLocal orders local version labels segment-wise: numeric segments
// compare numerically and sort after alphanumeric ones, per PEP 440.
func compareLocal(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}

	as := splitLocal(a)
	bs := splitLocal(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := segmentValue(as[i])
		bn, bNum := segmentValue(bs[i])
		switch {
		case aNum && bNum:
			if an != bn {
				return compareInt(an, bn)
			}
		case aNum != bNum:
			if aNum {
				return 1
			}
			return -1
		default:
			if as[i] != bs[i] {
				return strings.Compare(as[i], bs[i])
			}
		}
	}
	return compareInt(len(as), len(bs))
}

func splitLocal(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
}

func segmentValue(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
