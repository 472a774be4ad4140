package cfg

import (
	"slices"
	"strings"
)

// ExceptionRange is one entry of a method's exception table lifted to blocks:
// the protected blocks, the handler they transfer to, and the caught types.
type ExceptionRange struct {
	handler   *BasicBlock
	protected []*BasicBlock
	// Nil for a catch-all (finally) range.
	types []string
}

// Handler returns the handler block of the range.
func (r *ExceptionRange) Handler() *BasicBlock {
	return r.handler
}

// Protected returns the protected blocks of the range.
func (r *ExceptionRange) Protected() []*BasicBlock {
	return slices.Clone(r.protected)
}

// Len returns the number of protected blocks.
func (r *ExceptionRange) Len() int {
	return len(r.protected)
}

// Protects reports whether the block is part of the protected range.
func (r *ExceptionRange) Protects(b *BasicBlock) bool {
	return slices.Contains(r.protected, b)
}

// Types returns the caught exception types, nil for a catch-all range.
func (r *ExceptionRange) Types() []string {
	return slices.Clone(r.types)
}

// IsFinally reports whether the range catches every exception.
func (r *ExceptionRange) IsFinally() bool {
	return r.types == nil
}

// TypesKey returns the caught types joined by ':'. The boolean return value
// is false for a catch-all range, which has no key.
func (r *ExceptionRange) TypesKey() (string, bool) {
	if r.types == nil {
		return "", false
	}
	return strings.Join(r.types, ":"), true
}

// SameTypes reports whether both ranges catch the same types. Two catch-all
// ranges are equal.
func (r *ExceptionRange) SameTypes(o *ExceptionRange) bool {
	k1, ok1 := r.TypesKey()
	k2, ok2 := o.TypesKey()
	return ok1 == ok2 && k1 == k2
}

// String returns a short description such as "[1 2] -> 5 (java/lang/Exception)".
func (r *ExceptionRange) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range r.protected {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.String())
	}
	sb.WriteString("] -> ")
	sb.WriteString(r.handler.String())
	if key, ok := r.TypesKey(); ok {
		sb.WriteString(" (")
		sb.WriteString(key)
		sb.WriteByte(')')
	} else {
		sb.WriteString(" (finally)")
	}
	return sb.String()
}
