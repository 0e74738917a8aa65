// Package signature implements exact-byte matching of sampled image
// windows against known encrypted-container magic patterns.
package signature

import (
	"bytes"

	"github.com/deploymenttheory/go-encdetect/internal/interfaces"
	"github.com/deploymenttheory/go-encdetect/internal/types"
)

// matcher implements the SignatureMatcher interface over an immutable
// table. Table order encodes priority: the first matching entry wins, so
// more specific formats must precede more general ones.
type matcher struct {
	entries []types.SignatureEntry
}

// Ensure interface compliance
var _ interfaces.SignatureMatcher = (*matcher)(nil)

// NewMatcher creates a SignatureMatcher from the given table. The table is
// copied so the matcher cannot observe later mutation of the caller's
// slice; after construction it is never modified and needs no locking.
func NewMatcher(entries []types.SignatureEntry) interfaces.SignatureMatcher {
	copied := make([]types.SignatureEntry, len(entries))
	copy(copied, entries)
	return &matcher{entries: copied}
}

// Match tests the sample against each entry in table order. An entry can
// only match when the sample is long enough to contain the whole pattern
// at its declared offset.
func (m *matcher) Match(sample []byte) (string, bool) {
	for _, entry := range m.entries {
		if len(sample) < entry.MinSampleLength() {
			continue
		}
		window := sample[entry.PatternOffset : entry.PatternOffset+len(entry.Pattern)]
		if bytes.Equal(window, entry.Pattern) {
			return entry.Name, true
		}
	}
	return "", false
}

// Entries returns a copy of the matcher's table.
func (m *matcher) Entries() []types.SignatureEntry {
	copied := make([]types.SignatureEntry, len(m.entries))
	copy(copied, m.entries)
	return copied
}
