package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"strings"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// renderKey returns render:sha256(json([inputKey, canonical opts])).
func renderKey(inputKey string, opts RenderKeyOpts) string {
	opts.Option = canonicalWords(opts.Option)
	opts.DrawOption = canonicalWords(opts.DrawOption)
	opts.Format = strings.ToLower(opts.Format)
	data, _ := json.Marshal([]any{inputKey, opts})
	return "render:" + Hash(data)
}

// canonicalWords lowercases an option string and sorts its words. Option
// keywords match case-insensitively and never span a space, so "Diff
// errasym" and "errasym diff" select the same plot and share a key.
func canonicalWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	slices.Sort(words)
	return strings.Join(words, " ")
}
