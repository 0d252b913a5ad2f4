package models

// MaxFailedCombinations bounds the negative context handed to the oracle.
const MaxFailedCombinations = 5

// CombinationRecord maps a combination key to a result name, or to nil when
// the combination explicitly produced nothing.
type CombinationRecord struct {
	Key    string  `yaml:"key"`
	Result *string `yaml:"result"`
}

// Combinations is the result cache, ordered oldest first.
type Combinations []CombinationRecord

// Lookup returns the cached result for key. found is false on a cache miss;
// a nil result with found=true is a cached "no reaction".
func (c Combinations) Lookup(key string) (result *string, found bool) {
	for _, r := range c {
		if r.Key == key {
			return r.Result, true
		}
	}
	return nil, false
}

// With returns a copy with key set to result. An existing entry is moved to
// the newest position.
func (c Combinations) With(key string, result *string) Combinations {
	out := make(Combinations, 0, len(c)+1)
	for _, r := range c {
		if r.Key != key {
			out = append(out, r)
		}
	}
	return append(out, CombinationRecord{Key: key, Result: result})
}

// Without returns a copy with key removed.
func (c Combinations) Without(key string) Combinations {
	out := make(Combinations, 0, len(c))
	for _, r := range c {
		if r.Key != key {
			out = append(out, r)
		}
	}
	return out
}

// Recent returns up to n of the newest entries, oldest first.
func (c Combinations) Recent(n int) []CombinationRecord {
	if n <= 0 {
		return nil
	}
	if len(c) <= n {
		return append([]CombinationRecord(nil), c...)
	}
	return append([]CombinationRecord(nil), c[len(c)-n:]...)
}

// FailedCombinations is the most-recent-first-out log of keys that produced nothing.
type FailedCombinations []string

// Add returns a copy with key appended, evicting the oldest entries beyond
// MaxFailedCombinations. A key already present is moved to the end.
func (f FailedCombinations) Add(key string) FailedCombinations {
	out := f.Remove(key)
	out = append(out, key)
	if len(out) > MaxFailedCombinations {
		out = out[len(out)-MaxFailedCombinations:]
	}
	return out
}

// Remove returns a copy without key.
func (f FailedCombinations) Remove(key string) FailedCombinations {
	out := make(FailedCombinations, 0, len(f)+1)
	for _, k := range f {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

func (f FailedCombinations) Contains(key string) bool {
	for _, k := range f {
		if k == key {
			return true
		}
	}
	return false
}

// StringPtr is a small helper for building cache results.
func StringPtr(s string) *string {
	return &s
}
