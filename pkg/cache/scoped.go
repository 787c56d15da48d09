package cache

// ScopedKeyer prefixes every key minted by an inner Keyer. The server
// uses it to keep per-deployment namespaces apart when several
// instances share one Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so all keys carry prefix. A nil inner
// falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AnalysisKey implements Keyer.
func (k *ScopedKeyer) AnalysisKey(graphHash string) string {
	return k.prefix + k.inner.AnalysisKey(graphHash)
}

// BundleKey implements Keyer.
func (k *ScopedKeyer) BundleKey(graphHash string, opts BundleKeyOpts) string {
	return k.prefix + k.inner.BundleKey(graphHash, opts)
}

// PreviewKey implements Keyer.
func (k *ScopedKeyer) PreviewKey(graphHash string, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(graphHash, opts)
}
