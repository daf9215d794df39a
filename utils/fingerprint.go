package utils

import "hash/fnv"

// FingerprintString returns the FNV-64a hash of s. Statement caches key on it
// so the full SQL text is not retained twice.
func FingerprintString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}
