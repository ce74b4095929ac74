package wasm

import "github.com/wasmkit/wasmcore/internal/platform"

// DeadlineToken is consulted at section boundaries and periodically during
// instruction-heavy work so long-running decodes/validations can be
// cancelled cooperatively. There are no suspension points in this package;
// Expired is polled, never awaited.
type DeadlineToken interface {
	// Expired reports whether the deadline has passed.
	Expired() bool
}

// Config bundles the resource caps and behavioral switches that tune
// decoding and validation for a given host tier, from an embedded device
// with a few megabytes of RAM up to a general-purpose server.
type Config struct {
	StrictSectionOrder      bool
	AllowUnknownCustomNames bool
	ValidateUTF8            bool
	CollectWarnings         bool

	MaxModuleBytes      uint64
	MaxSectionBytes     uint64
	MaxFunctionBytes    uint64
	MaxLocalsPerFunc    uint32
	MaxOperandStack     uint32
	MaxLabelStack       uint32
	MaxVectorElements   uint32 // generic cap on any section/vector element count

	Features Features

	// InstructionsPerDeadlineCheck is how many instructions the validator
	// processes between polls of Deadline, default 4096 per the
	// specification's concurrency model.
	InstructionsPerDeadlineCheck uint32
	Deadline                     DeadlineToken
}

// DefaultConfig returns the resource envelope for a general-purpose host:
// generous but still bounded, so a hostile input cannot force unbounded
// allocation.
func DefaultConfig() *Config {
	return &Config{
		StrictSectionOrder:      true,
		AllowUnknownCustomNames: true,
		ValidateUTF8:            true,
		CollectWarnings:         true,

		MaxModuleBytes:    1 << 30, // 1 GiB
		MaxSectionBytes:   1 << 30,
		MaxFunctionBytes:  1 << 24, // 16 MiB
		MaxLocalsPerFunc:  50000,
		MaxOperandStack:   1 << 16,
		MaxLabelStack:     1 << 12,
		MaxVectorElements: 1 << 24,

		InstructionsPerDeadlineCheck: 4096,
	}
}

// EmbeddedConfig returns a resource envelope tuned for a constrained host
// (~16 MiB RAM, no dynamic allocation outside a small arena): the same
// behavior, far tighter caps.
func EmbeddedConfig() *Config {
	c := DefaultConfig()
	c.MaxModuleBytes = 1 << 20     // 1 MiB
	c.MaxSectionBytes = 1 << 19    // 512 KiB
	c.MaxFunctionBytes = 1 << 16   // 64 KiB
	c.MaxLocalsPerFunc = 1024
	c.MaxOperandStack = 256
	c.MaxLabelStack = 64
	c.MaxVectorElements = 1 << 14
	c.InstructionsPerDeadlineCheck = 512
	return c
}

// ConfigForCurrentHost returns DefaultConfig or EmbeddedConfig according to
// the host's capability tier, per the specification's host-capability
// interface: the core consults it only to choose defaults.
func ConfigForCurrentHost() *Config {
	if platform.Current.DefaultTier() == platform.TierEmbedded {
		return EmbeddedConfig()
	}
	return DefaultConfig()
}

// CheckDeadline reports a Timeout error if c's deadline token has expired.
// It is exported so the binary decoder, which lives in a separate package,
// can poll it at section boundaries alongside the validator's per-
// instruction polling.
func (c *Config) CheckDeadline() *Error {
	if c.Deadline != nil && c.Deadline.Expired() {
		return NewError(CategoryModule, KindTimeout, 0, "deadline exceeded")
	}
	return nil
}

// CheckVectorCount reports a ResourceLimit error if n exceeds
// MaxVectorElements, the generic cap applied to every vector (section
// entry list, br_table target list, and so on) before it is allocated.
func (c *Config) CheckVectorCount(n uint32, context string, offset uint64) *Error {
	if n > c.MaxVectorElements {
		return NewError(CategoryModule, KindResourceLimit, offset, context)
	}
	return nil
}
