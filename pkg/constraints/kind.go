package constraints

// Kind tags each Atomic variant.
type Kind uint8

const (
	KindEqualTo Kind = iota + 1
	KindInSet
	KindMatchesRegex
	KindContainsRegex
	KindMatchesStandard
	KindGreaterThan
	KindGreaterThanOrEqual
	KindLessThan
	KindLessThanOrEqual
	KindBefore
	KindBeforeOrEqual
	KindAfter
	KindAfterOrEqual
	KindGranularTo
	KindIsNull
	KindIsOfType
	KindLongerThan
	KindShorterThan
	KindHasLength
	KindFormatAs
	KindNot
	KindViolated
)

var kindNames = [...]string{
	KindEqualTo:            "equalTo",
	KindInSet:              "inSet",
	KindMatchesRegex:       "matchingRegex",
	KindContainsRegex:      "containingRegex",
	KindMatchesStandard:    "aValid",
	KindGreaterThan:        "greaterThan",
	KindGreaterThanOrEqual: "greaterThanOrEqualTo",
	KindLessThan:           "lessThan",
	KindLessThanOrEqual:    "lessThanOrEqualTo",
	KindBefore:             "before",
	KindBeforeOrEqual:      "beforeOrAt",
	KindAfter:              "after",
	KindAfterOrEqual:       "afterOrAt",
	KindGranularTo:         "granularTo",
	KindIsNull:             "null",
	KindIsOfType:           "ofType",
	KindLongerThan:         "longerThan",
	KindShorterThan:        "shorterThan",
	KindHasLength:          "ofLength",
	KindFormatAs:           "formattedAs",
	KindNot:                "not",
	KindViolated:           "violated",
}

// String returns the profile type code of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
