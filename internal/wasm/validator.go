package wasm

import (
	"sort"

	"github.com/hashicorp/go-multierror"
)

// ValidateModule runs the module-structure checks of the specification
// (index ranges, limits, initializer typing, export uniqueness) followed by
// the per-function type-stack algorithm, and returns every violation found
// rather than stopping at the first one. A nil return means m is valid.
func ValidateModule(m *Module, cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var errs *multierror.Error

	for _, ft := range m.TypeSection {
		for _, t := range ft.Params {
			if !isKnownValueType(t) {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidBlockType, 0, "type section: unknown parameter value type"))
			}
		}
		for _, t := range ft.Results {
			if !isKnownValueType(t) {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidBlockType, 0, "type section: unknown result value type"))
			}
		}
		if len(ft.Results) > 1 {
			errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidBlockType, 0, "type section: multi-value results are not supported by this MVP core"))
		}
	}

	for _, imp := range m.ImportSection {
		switch imp.Kind {
		case ExternKindFunc:
			if int(imp.DescFunc) >= len(m.TypeSection) {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidTypeIndex, 0, "import section: function import references an undefined type"))
			}
		case ExternKindTable:
			if err := validateLimits(imp.DescTable.Limits, MaxTablePages, 0, "import section: table limits"); err != nil {
				errs = multierror.Append(errs, err)
			}
		case ExternKindMemory:
			if err := validateLimits(imp.DescMemory.Limits, MaxMemoryPages, 0, "import section: memory limits"); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	for _, typeIdx := range m.FunctionSection {
		if int(typeIdx) >= len(m.TypeSection) {
			errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidTypeIndex, 0, "function section: undefined type index"))
		}
	}

	if m.TableCount() > 1 {
		errs = multierror.Append(errs, NewError(CategoryValidation, KindResourceLimit, 0, "table section: at most one table is allowed in this MVP core"))
	}
	for _, t := range m.TableSection {
		if err := validateLimits(t.Limits, MaxTablePages, 0, "table section: limits"); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	if m.MemoryCount() > 1 {
		errs = multierror.Append(errs, NewError(CategoryValidation, KindResourceLimit, 0, "memory section: at most one memory is allowed in this MVP core"))
	}
	for _, mem := range m.MemorySection {
		if err := validateLimits(mem.Limits, MaxMemoryPages, 0, "memory section: limits"); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	for i, g := range m.GlobalSection {
		if err := validateConstantExpression(g.Init, g.Type.ValType, m, cfg); err != nil {
			errs = multierror.Append(errs, Wrap(CategoryValidation, KindConstExprViolation, 0,
				"global section: initializer", err).WithFuncIndex(uint32(i)))
		}
	}

	// Duplicate export names are rejected at decode time, since
	// Module.ExportSection is keyed by name and cannot represent them.
	for name, exp := range m.ExportSection {
		switch exp.Kind {
		case ExternKindFunc:
			if exp.Index >= m.FunctionCount() {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidFunctionIndex, 0, "export section: "+name))
			}
		case ExternKindTable:
			if exp.Index >= m.TableCount() {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidTableIndex, 0, "export section: "+name))
			}
		case ExternKindMemory:
			if exp.Index >= m.MemoryCount() {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidMemoryIndex, 0, "export section: "+name))
			}
		case ExternKindGlobal:
			if exp.Index >= m.GlobalCount() {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidGlobalIndex, 0, "export section: "+name))
			}
		}
	}

	if m.StartSection != nil {
		ft := m.TypeOfFunction(*m.StartSection)
		if ft == nil {
			errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidStart, 0, "start section: undefined function index"))
		} else if len(ft.Params) != 0 || len(ft.Results) != 0 {
			errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidStart, 0, "start section: function must take no parameters and return no results"))
		}
	}

	for i, el := range m.ElementSection {
		if el.TableIndex >= m.TableCount() {
			errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidTableIndex, 0, "element section: undefined table index"))
			continue
		}
		if err := validateConstantExpression(el.OffsetExpr, ValueTypeI32, m, cfg); err != nil {
			errs = multierror.Append(errs, Wrap(CategoryValidation, KindConstExprViolation, 0, "element section: offset", err).WithFuncIndex(uint32(i)))
		}
		for _, fnIdx := range el.Init {
			if fnIdx >= m.FunctionCount() {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidFunctionIndex, 0, "element section: undefined function index"))
			}
		}
	}

	for i, d := range m.DataSection {
		if d.MemoryIndex >= m.MemoryCount() {
			errs = multierror.Append(errs, NewError(CategoryValidation, KindInvalidMemoryIndex, 0, "data section: undefined memory index"))
			continue
		}
		if err := validateConstantExpression(d.OffsetExpr, ValueTypeI32, m, cfg); err != nil {
			errs = multierror.Append(errs, Wrap(CategoryValidation, KindConstExprViolation, 0, "data section: offset", err).WithFuncIndex(uint32(i)))
		}
	}

	if len(m.FunctionSection) != len(m.CodeSection) {
		errs = multierror.Append(errs, NewError(CategoryValidation, KindSectionSizeMismatch, 0, "function and code sections must have the same entry count"))
	} else {
		for i, typeIdx := range m.FunctionSection {
			if int(typeIdx) >= len(m.TypeSection) {
				continue // already reported above
			}
			ft := m.TypeSection[typeIdx]
			code := m.CodeSection[i]
			if uint32(len(code.LocalTypes)) > cfg.MaxLocalsPerFunc {
				errs = multierror.Append(errs, NewError(CategoryValidation, KindResourceLimit, 0, "code section: local count exceeds configured limit").WithFuncIndex(uint32(i)))
				continue
			}
			if err := validateFunction(ft, code.Body, code.LocalTypes, m, cfg, 0); err != nil {
				funcIdx := m.ImportedFunctionCount() + uint32(i)
				errs = multierror.Append(errs, err.WithFuncIndex(funcIdx))
			}
		}
	}

	if errs == nil {
		return nil
	}
	sortValidationErrors(errs)
	return errs.ErrorOrNil()
}

// MaxTablePages is the WebAssembly 1.0 table element-count ceiling,
// 2^32 - 1. Table limits are checked against this wire limit only; the
// configured vector caps are not applied to them.
const MaxTablePages = 1 << 32 - 1

func validateLimits(l Limits, max uint32, offset uint64, context string) *Error {
	if l.Max != nil && *l.Max < l.Min {
		return NewError(CategoryValidation, KindResourceLimit, offset, context+": max is less than min")
	}
	if l.Min > max || (l.Max != nil && *l.Max > max) {
		return NewError(CategoryValidation, KindResourceLimit, offset, context+": exceeds the allowed range")
	}
	return nil
}

// sortValidationErrors orders aggregated *Error values by function index
// then byte offset, so repeated validation of the same invalid module
// produces a stable diagnostic ordering.
func sortValidationErrors(errs *multierror.Error) {
	sort.SliceStable(errs.Errors, func(i, j int) bool {
		ei, oki := errs.Errors[i].(*Error)
		ej, okj := errs.Errors[j].(*Error)
		if !oki || !okj {
			return false
		}
		if ei.FuncIndex != ej.FuncIndex {
			return ei.FuncIndex < ej.FuncIndex
		}
		return ei.Offset < ej.Offset
	})
}
