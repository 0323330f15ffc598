package restrictions

const (
	allowTrue uint8 = 1 << iota
	allowFalse
)

// Boolean restricts a field to a subset of {true, false}.
type Boolean struct {
	allowed uint8
}

// AnyBoolean admits both values.
func AnyBoolean() Boolean {
	return Boolean{allowed: allowTrue | allowFalse}
}

// BooleanOf admits exactly the supplied values.
func BooleanOf(values ...bool) Boolean {
	var out Boolean
	for _, v := range values {
		if v {
			out.allowed |= allowTrue
		} else {
			out.allowed |= allowFalse
		}
	}
	return out
}

// Kind implements Typed.
func (b Boolean) Kind() Kind { return KindBoolean }

// Intersect implements Typed.
func (b Boolean) Intersect(other Typed) (Typed, bool) {
	o, ok := other.(Boolean)
	if !ok {
		return nil, false
	}
	out := Boolean{allowed: b.allowed & o.allowed}
	if out.allowed == 0 {
		return nil, false
	}
	return out, true
}

// Permits implements Typed.
func (b Boolean) Permits(value any) bool {
	v, ok := value.(bool)
	if !ok {
		return false
	}
	if v {
		return b.allowed&allowTrue != 0
	}
	return b.allowed&allowFalse != 0
}

// Equal implements Typed.
func (b Boolean) Equal(other Typed) bool {
	o, ok := other.(Boolean)
	return ok && o.allowed == b.allowed
}

func (b Boolean) String() string {
	switch b.allowed {
	case allowTrue:
		return "boolean {true}"
	case allowFalse:
		return "boolean {false}"
	case allowTrue | allowFalse:
		return "boolean {true, false}"
	default:
		return "boolean {}"
	}
}
