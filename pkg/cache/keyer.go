package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys from request parameters.
type Keyer interface {
	// ArtifactKey returns the key of one rendered output.
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists everything that influences a rendered artifact.
type ArtifactKeyOpts struct {
	Units    int     `json:"units"`
	Angle    float64 `json:"angle"`
	Rigidity float64 `json:"rigidity"`
	Seed     uint64  `json:"seed"`
	Label    string  `json:"label"`
	Comment  string  `json:"comment"`
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Yaw      float64 `json:"yaw"`
	Pitch    float64 `json:"pitch"`
	Zoom     float64 `json:"zoom"`
	Radius   float64 `json:"radius"`
	Detailed bool    `json:"detailed"`
}

// DefaultKeyer hashes the options into "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey hashes the JSON form of opts.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	data, _ := json.Marshal(opts)
	return "artifact:" + Hash(data)
}

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
