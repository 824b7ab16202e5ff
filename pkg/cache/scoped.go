package cache

// ScopedKeyer wraps a Keyer with a prefix so that entries written by
// different tool versions or configurations never collide.
//
// Example usage:
//
//	// entries from another release are never reused
//	keyer := NewScopedKeyer(NewDefaultKeyer(), buildinfo.Version+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

func (k *ScopedKeyer) ValidationKey(docHash string, opts ValidationKeyOpts) string {
	return k.prefix + k.inner.ValidationKey(docHash, opts)
}

func (k *ScopedKeyer) ConversionKey(docHash string, opts ConversionKeyOpts) string {
	return k.prefix + k.inner.ConversionKey(docHash, opts)
}

func (k *ScopedKeyer) RenderKey(docHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(docHash, opts)
}
