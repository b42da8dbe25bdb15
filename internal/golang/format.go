package golang

import (
	"golang.org/x/tools/imports"
)

// Format runs goimports over generated source, fixing the import block and
// applying gofmt layout.
func Format(src []byte) ([]byte, error) {
	return imports.Process("", src, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
}
