// Package cachekey canonicalizes generation request payloads into stable
// fingerprints used for response-cache deduplication.
//
// Two payloads that differ only in field order, insignificant whitespace, or
// null-omitted fields map to the same key. The user id and content type are
// part of the hashed domain, so identical payloads from different users (or
// for different types) always produce distinct keys.
package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// canonicalFields is the closed allow-list of payload fields that participate
// in the fingerprint. Everything else is dropped during normalization.
var canonicalFields = []string{
	"topic", "niche", "tone", "voice", "hashtags_base", "forbidden", "cta", "emojis",
}

// aliasFields maps alternative payload names onto canonical ones. The alias
// applies only when the canonical name is absent.
var aliasFields = map[string]string{
	"brand_voice": "voice",
}

// Normalize reduces payload to the canonical allow-list and recursively cleans
// values: strings are trimmed, nil entries dropped from lists, nil-valued keys
// dropped from maps. It never fails; absent fields are simply omitted.
//
// Normalize is idempotent: Normalize(Normalize(p)) == Normalize(p).
func Normalize(payload map[string]any) map[string]any {
	norm := make(map[string]any, len(canonicalFields))
	for _, k := range canonicalFields {
		if v, ok := payload[k]; ok && v != nil {
			norm[k] = clean(v)
		}
	}
	for alias, canonical := range aliasFields {
		if _, have := norm[canonical]; have {
			continue
		}
		if v, ok := payload[alias]; ok && v != nil {
			norm[canonical] = clean(v)
		}
	}
	return norm
}

// clean recursively normalizes a single value.
func clean(v any) any {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, clean(e))
		}
		return out
	case []string:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, strings.TrimSpace(e))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if e == nil {
				continue
			}
			out[k] = clean(e)
		}
		return out
	default:
		return v
	}
}

// MakeKey returns the hex SHA-256 digest of "userID|type|canonicalJSON".
//
// encoding/json serializes map keys in sorted order with no extraneous
// whitespace, which makes the marshalled normalized payload the canonical
// serialization directly.
func MakeKey(userID, contentType string, payload map[string]any) string {
	norm := Normalize(payload)
	blob, err := json.Marshal(norm)
	if err != nil {
		// Normalized payloads only contain JSON-native types; a marshal
		// failure would mean a non-serializable scalar slipped through.
		// Hash the empty object rather than failing the request.
		blob = []byte("{}")
	}
	var b strings.Builder
	b.Grow(len(userID) + len(contentType) + len(blob) + 2)
	b.WriteString(userID)
	b.WriteByte('|')
	b.WriteString(contentType)
	b.WriteByte('|')
	b.Write(blob)
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
