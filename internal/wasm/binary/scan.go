package binary

import (
	"github.com/wasmkit/wasmcore/api"
	"github.com/wasmkit/wasmcore/internal/wasm"
)

// ScanSections streams the top-level section table of data without
// decoding any section body: the id, absolute offset and size of its
// content, and (for custom sections) its name. It still validates the
// header and section framing, but never builds a Module.
func ScanSections(data []byte, cfg *wasm.Config) ([]api.SectionInfo, *wasm.Error) {
	if cfg == nil {
		cfg = wasm.DefaultConfig()
	}
	r := wasm.NewReader(data)
	if err := checkHeader(r); err != nil {
		return nil, err
	}

	var out []api.SectionInfo
	for !r.AtEnd() {
		id, err := r.MustReadByte("section id")
		if err != nil {
			return nil, err
		}
		size, err := r.ReadVarUint32("section size")
		if err != nil {
			return nil, err
		}
		offset := r.Position()
		sr, err := r.Frame(size)
		if err != nil {
			return nil, err
		}

		info := api.SectionInfo{ID: id, Offset: offset, Size: uint64(size)}
		if id == wasm.SectionIDCustom {
			name, err := sr.ReadName("custom section name", cfg.ValidateUTF8)
			if err != nil {
				return nil, err
			}
			info.Name = name
		}
		out = append(out, info)
	}
	return out, nil
}
