package parser

// Param is one key/value pair from a parameter body.
type Param struct {
	Key   string
	Value string
}

// ParamList is an ordered list of pairs. Duplicate keys are kept.
type ParamList []Param

// Lookup returns the value of the first pair whose key matches key,
// ignoring ASCII case only.
func (l ParamList) Lookup(key string) (string, bool) {
	for _, p := range l {
		if equalFoldASCII(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// equalFoldASCII compares case-insensitively over ASCII letters only, so
// Unicode folds such as "ſ" for "s" do not match.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// Has reports whether any pair matches key.
func (l ParamList) Has(key string) bool {
	_, ok := l.Lookup(key)
	return ok
}

// Keys returns the keys in scan order.
func (l ParamList) Keys() []string {
	keys := make([]string, len(l))
	for i, p := range l {
		keys[i] = p.Key
	}
	return keys
}
