package binary

import "github.com/wasmkit/wasmcore/internal/wasm"

const (
	nameSubsecModule   = 0
	nameSubsecFunction = 1
	nameSubsecLocal    = 2
)

// decodeNameSection parses the payload of a custom section named "name":
// the well-known module/function/local debug-name subsections. Unknown
// subsection ids are skipped rather than rejected, since the name section
// is explicitly designed for forward-compatible extension.
func decodeNameSection(data []byte, cfg *wasm.Config) (*wasm.NameSection, *wasm.Error) {
	r := wasm.NewReader(data)
	ns := &wasm.NameSection{FunctionNames: map[uint32]string{}, LocalNames: map[uint32]map[uint32]string{}}

	for !r.AtEnd() {
		id, err := r.MustReadByte("name subsection id")
		if err != nil {
			return nil, err
		}
		size, err := r.ReadVarUint32("name subsection size")
		if err != nil {
			return nil, err
		}
		sr, err := r.Frame(size)
		if err != nil {
			return nil, err
		}
		switch id {
		case nameSubsecModule:
			name, err := sr.ReadName("module name", cfg.ValidateUTF8)
			if err != nil {
				return nil, err
			}
			ns.ModuleName = name
		case nameSubsecFunction:
			if err := decodeNameMap(sr, cfg, ns.FunctionNames); err != nil {
				return nil, err
			}
		case nameSubsecLocal:
			count, err := sr.ReadVarUint32("local names function count")
			if err != nil {
				return nil, err
			}
			for i := uint32(0); i < count; i++ {
				funcIdx, err := sr.ReadVarUint32("local names function index")
				if err != nil {
					return nil, err
				}
				locals := map[uint32]string{}
				if err := decodeNameMap(sr, cfg, locals); err != nil {
					return nil, err
				}
				ns.LocalNames[funcIdx] = locals
			}
		}
		// Subsection framing is authoritative: skip any unconsumed bytes of
		// an unrecognized or partially-understood subsection.
	}
	return ns, nil
}

func decodeNameMap(r *wasm.Reader, cfg *wasm.Config, out map[uint32]string) *wasm.Error {
	count, err := r.ReadVarUint32("name map count")
	if err != nil {
		return err
	}
	if err := cfg.CheckVectorCount(count, "name map entries", r.Position()); err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		idx, err := r.ReadVarUint32("name map index")
		if err != nil {
			return err
		}
		name, err := r.ReadName("name map name", cfg.ValidateUTF8)
		if err != nil {
			return err
		}
		out[idx] = name
	}
	return nil
}
