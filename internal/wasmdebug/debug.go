// Package wasmdebug formats diagnostic strings: human-readable function
// names and signatures, and a short hex dump centered on an error's byte
// offset. The cmd/wasmcore and cmd/wasminspect tools do not use it.
package wasmdebug

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wasmkit/wasmcore/api"
)

// FuncName formats a function for diagnostics as "module.function", falling
// back to the function's index (as "$N") when it has no recorded name, and
// to an empty module name when the module itself is unnamed.
func FuncName(moduleName, funcName string, funcIdx uint32) string {
	if funcName == "" {
		funcName = "$" + strconv.FormatUint(uint64(funcIdx), 10)
	}
	if moduleName == "" {
		return "." + funcName
	}
	return moduleName + "." + funcName
}

// AddSignature appends a function's parameter and result types to a
// previously formatted name, e.g. "x.y" becomes "x.y(i32,f64) i64".
func AddSignature(name string, paramTypes, resultTypes []api.ValueType) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	writeTypeList(&b, paramTypes)
	b.WriteByte(')')
	switch len(resultTypes) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(api.ValueTypeName(resultTypes[0]))
	default:
		b.WriteString(" (")
		writeTypeList(&b, resultTypes)
		b.WriteByte(')')
	}
	return b.String()
}

func writeTypeList(b *strings.Builder, types []api.ValueType) {
	for i, t := range types {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(api.ValueTypeName(t))
	}
}

// HexContext renders up to width bytes of data centered on offset, with a
// caret line pointing at the offending byte, so a caller can show where a
// decode or validation error occurred without re-scanning the input.
func HexContext(data []byte, offset uint64, width int) string {
	if width <= 0 {
		width = 16
	}
	start := int(offset) - width/2
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(data) {
		end = len(data)
		start = end - width
		if start < 0 {
			start = 0
		}
	}

	var hex, caret strings.Builder
	for i := start; i < end; i++ {
		if i > start {
			hex.WriteByte(' ')
			caret.WriteByte(' ')
		}
		fmt.Fprintf(&hex, "%02x", data[i])
		if uint64(i) == offset {
			caret.WriteString("^^")
		} else {
			caret.WriteString("  ")
		}
	}
	return hex.String() + "\n" + caret.String()
}
