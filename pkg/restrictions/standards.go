package restrictions

import (
	"regexp"
	"strconv"
	"strings"
)

// StandardFormat names an externally defined identifier format a string must
// be a valid instance of.
type StandardFormat string

const (
	StandardISIN  StandardFormat = "ISIN"
	StandardSEDOL StandardFormat = "SEDOL"
	StandardCUSIP StandardFormat = "CUSIP"
	StandardRIC   StandardFormat = "RIC"
)

var ricPattern = regexp.MustCompile(`^[A-Z0-9]{1,8}\.[A-Z]{1,3}$`)

// ParseStandard resolves a standard format name (case-insensitive).
func ParseStandard(name string) (StandardFormat, bool) {
	switch StandardFormat(strings.ToUpper(strings.TrimSpace(name))) {
	case StandardISIN:
		return StandardISIN, true
	case StandardSEDOL:
		return StandardSEDOL, true
	case StandardCUSIP:
		return StandardCUSIP, true
	case StandardRIC:
		return StandardRIC, true
	default:
		return "", false
	}
}

// StandardNames lists the supported formats.
func StandardNames() []string {
	return []string{string(StandardISIN), string(StandardSEDOL), string(StandardCUSIP), string(StandardRIC)}
}

// Valid reports whether value is a well-formed identifier with a correct
// check digit.
func (s StandardFormat) Valid(value string) bool {
	switch s {
	case StandardISIN:
		return validISIN(value)
	case StandardSEDOL:
		return validSEDOL(value)
	case StandardCUSIP:
		return validCUSIP(value)
	case StandardRIC:
		return ricPattern.MatchString(value)
	default:
		return false
	}
}

func charValue(r byte) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}

// validISIN checks the 12 character ISIN: two letter country code, nine
// alphanumerics and a Luhn check digit over the expanded digit string.
func validISIN(value string) bool {
	if len(value) != 12 {
		return false
	}
	if value[0] < 'A' || value[0] > 'Z' || value[1] < 'A' || value[1] > 'Z' {
		return false
	}
	if value[11] < '0' || value[11] > '9' {
		return false
	}
	var digits strings.Builder
	for i := 0; i < len(value); i++ {
		v, ok := charValue(value[i])
		if !ok {
			return false
		}
		digits.WriteString(strconv.Itoa(v))
	}
	return luhn(digits.String())
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

var sedolWeights = [7]int{1, 3, 1, 7, 3, 9, 1}

// validSEDOL checks the 7 character SEDOL: six consonant-or-digit characters
// and a weighted modulus 10 check digit.
func validSEDOL(value string) bool {
	if len(value) != 7 {
		return false
	}
	sum := 0
	for i := 0; i < 7; i++ {
		c := value[i]
		if strings.IndexByte("AEIOU", c) >= 0 {
			return false
		}
		v, ok := charValue(c)
		if !ok || (i == 6 && v > 9) {
			return false
		}
		sum += v * sedolWeights[i]
	}
	return sum%10 == 0
}

// validCUSIP checks the 9 character CUSIP using the modulus 10 double-add
// algorithm.
func validCUSIP(value string) bool {
	if len(value) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 8; i++ {
		var v int
		switch c := value[i]; c {
		case '*':
			v = 36
		case '@':
			v = 37
		case '#':
			v = 38
		default:
			var ok bool
			if v, ok = charValue(c); !ok {
				return false
			}
		}
		if i%2 == 1 {
			v *= 2
		}
		sum += v/10 + v%10
	}
	check := value[8]
	if check < '0' || check > '9' {
		return false
	}
	return int(check-'0') == (10-sum%10)%10
}
