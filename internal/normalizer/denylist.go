package normalizer

import (
	"sort"
	"strings"

	"github.com/scan-io-git/sarifclean/internal/tree"
)

// tagsKey is only legal as a string array inside a property bag.
const tagsKey = "tags"

// DefaultDenylist returns the non-standard members emitted by the vendor export.
func DefaultDenylist() []string {
	return []string{
		"sarifNodeKind",
		"propertyNames",
		tagsKey,
		"moniker",
		"isBinaryRegion",
		"isLineColumnBasedTextRegion",
		"isOffsetBasedTextRegion",
	}
}

// Denylist is the set of member names removed from every mapping.
type Denylist struct {
	keys map[string]struct{}
}

// NewDenylist builds a Denylist from keys. Blank entries are ignored.
func NewDenylist(keys ...string) *Denylist {
	d := &Denylist{keys: make(map[string]struct{}, len(keys))}
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		d.keys[key] = struct{}{}
	}
	return d
}

// Contains reports whether key is denylisted.
func (d *Denylist) Contains(key string) bool {
	_, ok := d.keys[key]
	return ok
}

// Keys returns the denylisted names in sorted order.
func (d *Denylist) Keys() []string {
	keys := make([]string, 0, len(d.keys))
	for key := range d.keys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// strips decides whether the member key with value val of a node with role r is removed.
func (d *Denylist) strips(r role, key string, val any) bool {
	if !d.Contains(key) {
		return false
	}
	if key == tagsKey && r == rolePropertyBag && isStringArray(val) {
		return false
	}
	return true
}

func isStringArray(v any) bool {
	arr, ok := tree.AsArray(v)
	if !ok {
		return false
	}
	for _, item := range arr {
		if _, ok := tree.String(item); !ok {
			return false
		}
	}
	return true
}

// uniqueStrings drops repeated entries while keeping the first occurrence.
func uniqueStrings(arr []any) ([]any, bool) {
	seen := make(map[string]struct{}, len(arr))
	out := make([]any, 0, len(arr))
	for _, item := range arr {
		s := item.(string)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, len(out) != len(arr)
}
