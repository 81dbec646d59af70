// Package reply builds the nested-array spell-check response. The envelope
// length is unknown until traversal completes, so the builder supports
// postponed array lengths that are set after their elements were written,
// and encodes the finished tree as msgpack for the IPC layer.
package reply

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Builder assembles a response value tree through sequential emit calls.
// Fixed-length arrays close themselves once their declared element count is
// reached; postponed arrays stay open until SetArrayLength.
type Builder struct {
	root  []any
	stack []*frame
	err   error
}

type frame struct {
	values []any
	// want is the declared element count, or -1 for a postponed array.
	want int
}

// NewBuilder returns an empty response builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Array opens an array of exactly n elements. It closes on its own when the
// n-th element has been emitted.
func (b *Builder) Array(n int) {
	if b.err != nil {
		return
	}
	if n < 0 {
		b.fail("negative array length %d", n)
		return
	}
	if n == 0 {
		b.push([]any{})
		return
	}
	b.stack = append(b.stack, &frame{want: n})
}

// PostponedArray opens an array whose length is declared later via
// SetArrayLength.
func (b *Builder) PostponedArray() {
	if b.err != nil {
		return
	}
	b.stack = append(b.stack, &frame{want: -1})
}

// SetArrayLength closes the innermost postponed array. n must equal the
// number of elements actually emitted into it.
func (b *Builder) SetArrayLength(n int) {
	if b.err != nil {
		return
	}
	if len(b.stack) == 0 {
		b.fail("SetArrayLength with no open array")
		return
	}
	top := b.stack[len(b.stack)-1]
	if top.want != -1 {
		b.fail("SetArrayLength on a fixed-length array")
		return
	}
	if len(top.values) != n {
		b.fail("postponed array holds %d elements, length set to %d", len(top.values), n)
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.push(top.values)
}

// String emits a string element.
func (b *Builder) String(s string) {
	if b.err != nil {
		return
	}
	b.push(s)
}

// Double emits a floating-point element.
func (b *Builder) Double(f float64) {
	if b.err != nil {
		return
	}
	b.push(f)
}

// Integer emits an integer element.
func (b *Builder) Integer(i int64) {
	if b.err != nil {
		return
	}
	b.push(i)
}

func (b *Builder) push(v any) {
	if len(b.stack) == 0 {
		b.root = append(b.root, v)
		return
	}
	top := b.stack[len(b.stack)-1]
	top.values = append(top.values, v)
	if top.want >= 0 && len(top.values) == top.want {
		b.stack = b.stack[:len(b.stack)-1]
		b.push(top.values)
	}
}

func (b *Builder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
}

// Value returns the finished response tree. A single top-level value is
// returned bare; an unclosed array is a programming error.
func (b *Builder) Value() (any, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("%d arrays left open", len(b.stack))
	}
	if len(b.root) == 1 {
		return b.root[0], nil
	}
	return b.root, nil
}

// Marshal encodes the finished tree as msgpack.
func (b *Builder) Marshal() ([]byte, error) {
	v, err := b.Value()
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(v)
}
