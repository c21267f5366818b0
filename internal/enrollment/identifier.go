package enrollment

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// domainCodes maps known program tracks to their identifier prefix. Lookup is
// a case-sensitive exact match; anything unknown falls back to INTERN.
var domainCodes = map[string]string{
	"MERN Stack":         "MERN",
	"Java Development":   "JAVA",
	"Data Science":       "DATA",
	"Data Analytics":     "DATA",
	"AI/ML":              "AIML",
	"Cyber Security":     "CYBER",
	"Python Programming": "PYTHON",
	"UI/UX Design":       "DESIGN",
}

const fallbackDomainCode = "INTERN"

// suffixAlphabet omits visually ambiguous symbols (I, L, O, 0, 1).
const suffixAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const suffixLength = 4

// internIDPattern matches the structural form <CODE>-<YY>-P<phase>-<SUFFIX>.
var internIDPattern = regexp.MustCompile(`^[A-Z]+-\d{2}-P[1-3]-[A-Z0-9]{4}$`)

// NewInternID composes a human-readable identifier for a new intern, e.g.
// "MERN-25-P3-K7QX". No uniqueness check happens here; collisions are
// statistically negligible and surface as a unique-constraint violation at
// the persistence layer.
func NewInternID(domainLabel string, phase int) string {
	code, ok := domainCodes[domainLabel]
	if !ok {
		code = fallbackDomainCode
	}

	suffix := make([]byte, suffixLength)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}

	return fmt.Sprintf("%s-%02d-P%d-%s", code, time.Now().Year()%100, phase, suffix)
}

// IsValidInternID reports whether a candidate string has the identifier
// shape. Used by the public verification endpoint before hitting the store.
func IsValidInternID(id string) bool {
	return internIDPattern.MatchString(id)
}
