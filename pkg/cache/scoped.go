package cache

// ScopedKeyer prefixes every key of an inner Keyer, letting several
// deployments share one Redis database:
//
//	keyer := NewScopedKeyer(nil, "staging:")
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Inner: inner, Prefix: prefix}
}

func (k ScopedKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return k.Prefix + k.Inner.ArtifactKey(opts)
}
