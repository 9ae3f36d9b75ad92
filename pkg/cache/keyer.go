package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Keyer generates cache keys.
type Keyer interface {
	// DatasetKey identifies a fetched dataset by its source description,
	// such as a file path or a Mongo URI plus database.
	DatasetKey(source string) string
	// SnapshotKey identifies an encoded snapshot by the hash of the view it
	// was drawn from and the output format.
	SnapshotKey(viewHash, format string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DatasetKey returns "dataset:<hash>".
func (DefaultKeyer) DatasetKey(source string) string {
	return "dataset:" + Hash([]byte(source))
}

// SnapshotKey returns "snapshot:<format>:<hash>". The format stays readable
// so "cache clear" logs show what was dropped.
func (DefaultKeyer) SnapshotKey(viewHash, format string) string {
	return "snapshot:" + format + ":" + Hash([]byte(viewHash))
}

// ScopedKeyer prefixes every key of an inner Keyer, so several datasets or
// binary versions can share one backend without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) DatasetKey(source string) string {
	return k.prefix + k.inner.DatasetKey(source)
}

func (k ScopedKeyer) SnapshotKey(viewHash, format string) string {
	return k.prefix + k.inner.SnapshotKey(viewHash, format)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashParts hashes strings as one value. Parts are NUL-separated so
// ("ab", "c") and ("a", "bc") differ.
func HashParts(parts ...string) string {
	return Hash([]byte(strings.Join(parts, "\x00")))
}
