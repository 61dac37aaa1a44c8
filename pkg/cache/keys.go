package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Key prefixes. The prefix of a key is its key type in cache hooks.
const (
	prefixArtifact   = "artifact"
	prefixResolution = "resolution"
)

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Theme       string  `json:"theme,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey is the key of an SVG, PNG, PDF or JSON rendering of a
	// document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string

	// ResolutionKey is the key of the resolved anchor table of a document.
	ResolutionKey(docHash, theme string) string
}

// DefaultKeyer hashes key components.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey(prefixArtifact, docHash, opts)
}

// ResolutionKey implements Keyer.
func (DefaultKeyer) ResolutionKey(docHash, theme string) string {
	return hashKey(prefixResolution, docHash, theme)
}

// KeyType returns the type segment of key, ignoring any scope prefix.
func KeyType(key string) string {
	for _, p := range []string{prefixArtifact, prefixResolution} {
		if strings.Contains(key, p+":") {
			return p
		}
	}
	return "other"
}

// Hash returns the hex SHA-256 of data. Documents are keyed by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns prefix:Hash(json(parts)). Parts are plain values and
// structs with stable field order, so equal parts give equal keys.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
