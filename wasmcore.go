// Package wasmcore is the public façade over this module's decoder,
// validator, and encoder: parse a binary module, validate an already
// decoded one, re-encode a module back to bytes, and a couple of
// lightweight inspection helpers that never build a full Module.
package wasmcore

import (
	"github.com/wasmkit/wasmcore/internal/wasm"
	"github.com/wasmkit/wasmcore/internal/wasm/binary"

	"github.com/wasmkit/wasmcore/api"
)

// Module is the decoded, in-memory form of a WebAssembly binary.
type Module = wasm.Module

// DeadlineToken lets a caller cancel a long-running Parse/Validate
// cooperatively; see Config.Deadline.
type DeadlineToken = wasm.DeadlineToken

// ValidationLevel selects how much work ValidateBytes performs.
type ValidationLevel int

const (
	// HeaderOnly checks just the 8-byte magic and version.
	HeaderOnly ValidationLevel = iota
	// Structural decodes the module without running the type-stack
	// validator over function bodies.
	Structural
	// Full decodes and runs every static validation rule.
	Full
)

// Config bundles the resource caps and behavior switches documented in the
// specification's configuration section. Build one with NewConfig or
// DefaultConfig and customize it with the With* methods, which return a
// new value rather than mutating the receiver.
type Config struct{ c wasm.Config }

// DefaultConfig returns the resource envelope appropriate for this host,
// per internal/platform's capability probe.
func DefaultConfig() Config {
	return Config{c: *wasm.ConfigForCurrentHost()}
}

// NewConfig is an alias for DefaultConfig, named to match the
// specification's "constructor with named options" phrasing.
func NewConfig() Config { return DefaultConfig() }

func (c Config) WithStrictSectionOrder(v bool) Config      { c.c.StrictSectionOrder = v; return c }
func (c Config) WithAllowUnknownCustomNames(v bool) Config { c.c.AllowUnknownCustomNames = v; return c }
func (c Config) WithValidateUTF8(v bool) Config            { c.c.ValidateUTF8 = v; return c }
func (c Config) WithCollectWarnings(v bool) Config         { c.c.CollectWarnings = v; return c }
func (c Config) WithMaxModuleBytes(v uint64) Config        { c.c.MaxModuleBytes = v; return c }
func (c Config) WithMaxSectionBytes(v uint64) Config       { c.c.MaxSectionBytes = v; return c }
func (c Config) WithMaxFunctionBytes(v uint64) Config      { c.c.MaxFunctionBytes = v; return c }
func (c Config) WithMaxLocalsPerFunction(v uint32) Config  { c.c.MaxLocalsPerFunc = v; return c }
func (c Config) WithMaxOperandStack(v uint32) Config       { c.c.MaxOperandStack = v; return c }
func (c Config) WithMaxLabelStack(v uint32) Config         { c.c.MaxLabelStack = v; return c }
func (c Config) WithDeadline(d DeadlineToken) Config       { c.c.Deadline = d; return c }

// WithFeatureSaturatingTruncation enables or disables the 0xFC-prefixed
// non-trapping float-to-int conversion opcodes, off by default in an MVP
// core.
func (c Config) WithFeatureSaturatingTruncation(v bool) Config {
	c.c.Features = c.c.Features.Set(wasm.FeatureSaturatingTruncation, v)
	return c
}

// Parse decodes and fully validates data, returning the resulting Module,
// the first decode error, or the aggregated validation errors.
func Parse(data []byte, cfg Config) (*Module, error) {
	m, err := binary.DecodeModule(data, &cfg.c)
	if err != nil {
		return nil, err
	}
	if err := wasm.ValidateModule(m, &cfg.c); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseUnvalidated decodes data into a Module without running the
// validator, for callers that want to inspect a possibly-invalid module
// (e.g. a tool that reports every structural problem at once via a
// separate Validate call, or that only needs section metadata).
func ParseUnvalidated(data []byte, cfg Config) (*Module, error) {
	m, err := binary.DecodeModule(data, &cfg.c)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Validate runs every static validation rule against an already decoded
// Module, returning every violation found (via a wrapped
// *github.com/hashicorp/go-multierror.Error) rather than stopping at the
// first one.
func Validate(m *Module, cfg Config) error {
	return wasm.ValidateModule(m, &cfg.c)
}

// ValidateBytes runs the requested level of validation directly against a
// raw module. HeaderOnly never allocates a Module; Structural decodes but
// skips the type-stack algorithm; Full is equivalent to Parse with the
// Module discarded and only its error returned.
func ValidateBytes(data []byte, level ValidationLevel, cfg Config) error {
	if level == HeaderOnly {
		if !IsWasm(data) {
			return wasm.NewError(wasm.CategoryBinaryFormat, wasm.KindInvalidMagic, 0, "missing \\0asm header")
		}
		return nil
	}
	m, err := binary.DecodeModule(data, &cfg.c)
	if err != nil {
		return err
	}
	if level == Structural {
		return nil
	}
	return wasm.ValidateModule(m, &cfg.c)
}

// Encode serializes m back into the WebAssembly 1.0 binary format.
func Encode(m *Module, cfg Config) ([]byte, error) {
	b, err := binary.EncodeModule(m, &cfg.c)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// IsWasm reports whether data begins with the WebAssembly 1.0 magic number
// and version, without allocating.
func IsWasm(data []byte) bool {
	return len(data) >= 8 &&
		data[0] == 0x00 && data[1] == 0x61 && data[2] == 0x73 && data[3] == 0x6d &&
		data[4] == 0x01 && data[5] == 0x00 && data[6] == 0x00 && data[7] == 0x00
}

// SectionInfo is re-exported from api for callers that only import the
// root package.
type SectionInfo = api.SectionInfo

// SectionInfoList streams the top-level section table of a binary module
// (id, offset, size, and name for custom sections) without decoding any
// section body, so it runs in time proportional to the section count, not
// the module size.
func SectionInfoList(data []byte, cfg Config) ([]SectionInfo, error) {
	infos, err := binary.ScanSections(data, &cfg.c)
	if err != nil {
		return nil, err
	}
	return infos, nil
}
