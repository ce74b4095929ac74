package wasm

import (
	"strings"
)

// Features is a bit flag of optional decode/validate behaviors this package
// supports beyond the strict WebAssembly 1.0 MVP. It follows the same
// "bit flag until we have too many" approach used for feature toggles in
// this domain: flags are simpler to combine and test than a map.
type Features uint64

const (
	// FeatureSaturatingTruncation governs whether the 0xFC-prefixed
	// saturating truncation opcodes (non-trapping float-to-int conversion)
	// are recognized. Off by default: an MVP-only core rejects them as
	// InvalidOpcode. This is the resolution of the specification's open
	// question about the 0xFC opcode family.
	FeatureSaturatingTruncation Features = 1 << iota
)

// Set returns f with feature set to val.
func (f Features) Set(feature Features, val bool) Features {
	if val {
		return f | feature
	}
	return f &^ feature
}

// Get reports whether feature is enabled in f.
func (f Features) Get(feature Features) bool {
	return f&feature != 0
}

// String implements fmt.Stringer by listing enabled feature names.
func (f Features) String() string {
	var b strings.Builder
	for i := 0; i <= 63; i++ {
		target := Features(1 << uint(i))
		if f.Get(target) {
			if name := featureName(target); name != "" {
				if b.Len() > 0 {
					b.WriteByte('|')
				}
				b.WriteString(name)
			}
		}
	}
	return b.String()
}

func featureName(f Features) string {
	switch f {
	case FeatureSaturatingTruncation:
		return "saturating-truncation"
	}
	return ""
}
