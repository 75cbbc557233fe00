package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON returns the hash of v's JSON encoding.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// artifactKey builds "artifact:<format>:<hash>". The format stays readable
// so a cache listing shows what each entry holds; the options hash covers
// the rest.
func artifactKey(docHash string, opts ArtifactKeyOpts) string {
	optsHash, _ := HashJSON(opts)
	format := opts.Format
	if format == "" {
		format = "any"
	}
	return strings.Join([]string{"artifact", format, Hash([]byte(docHash + optsHash))}, ":")
}
