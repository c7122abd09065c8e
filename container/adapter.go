package container

// Category identifies a container category.
type Category int

const (
	NotContainer Category = iota
	KeyedMap
	ValueSet
	Timestamp
	ByteBuffer
	NumericBuffer
)

func (c Category) String() string {
	switch c {
	case KeyedMap:
		return "map"
	case ValueSet:
		return "set"
	case Timestamp:
		return "time"
	case ByteBuffer:
		return "bytes"
	case NumericBuffer:
		return "floats"
	}
	return "not-container"
}

// CategoryOf classifies a value by runtime type test.
func CategoryOf(v any) Category {
	switch v.(type) {
	case *Map:
		return KeyedMap
	case *Set:
		return ValueSet
	case *Time:
		return Timestamp
	case *Bytes:
		return ByteBuffer
	case *Floats:
		return NumericBuffer
	}
	return NotContainer
}

// Of reports whether v is an instance of a container category.
func Of(v any) bool {
	return CategoryOf(v) != NotContainer
}

// mutators lists, per category, the methods that mutate internal state.
// Everything else on a container only reads or derives new values.
var mutators = map[Category]map[string]bool{
	KeyedMap: {
		"Set":    true,
		"Delete": true,
		"Clear":  true,
	},
	ValueSet: {
		"Add":    true,
		"Delete": true,
		"Clear":  true,
	},
	Timestamp: {
		"Set":      true,
		"Add":      true,
		"Truncate": true,
	},
	ByteBuffer: {
		"SetByte": true,
		"CopyAt":  true,
		"Fill":    true,
		"Resize":  true,
	},
	NumericBuffer: {
		"SetAt":    true,
		"Fill":     true,
		"CopyFrom": true,
	},
}

// IsMutating reports whether the named method mutates internal state for
// the given category.
func IsMutating(c Category, method string) bool {
	return mutators[c][method]
}
