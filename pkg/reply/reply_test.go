package reply

import (
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestFixedArrayAutoCloses(t *testing.T) {
	b := NewBuilder()
	b.Array(2)
	b.String("a")
	b.String("b")

	v, err := b.Value()
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"a", "b"}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("Value() = %v, want %v", v, want)
	}
}

func TestEmptyArray(t *testing.T) {
	b := NewBuilder()
	b.Array(0)

	v, err := b.Value()
	if err != nil {
		t.Fatal(err)
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 0 {
		t.Errorf("Value() = %v, want empty array", v)
	}
}

func TestPostponedArrayLength(t *testing.T) {
	b := NewBuilder()
	b.PostponedArray()
	b.String("x")
	b.Integer(7)
	b.SetArrayLength(2)

	v, err := b.Value()
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"x", int64(7)}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("Value() = %v, want %v", v, want)
	}
}

func TestPostponedLengthMismatchFails(t *testing.T) {
	b := NewBuilder()
	b.PostponedArray()
	b.String("only")
	b.SetArrayLength(2)

	if _, err := b.Value(); err == nil {
		t.Error("length mismatch went undetected")
	}
}

func TestUnclosedArrayFails(t *testing.T) {
	b := NewBuilder()
	b.PostponedArray()
	b.String("dangling")

	if _, err := b.Value(); err == nil {
		t.Error("unclosed postponed array went undetected")
	}

	b = NewBuilder()
	b.Array(3)
	b.String("one of three")
	if _, err := b.Value(); err == nil {
		t.Error("half-filled fixed array went undetected")
	}
}

func TestSetLengthOnFixedArrayFails(t *testing.T) {
	b := NewBuilder()
	b.Array(2)
	b.SetArrayLength(0)
	if _, err := b.Value(); err == nil {
		t.Error("SetArrayLength on fixed array went undetected")
	}

	b = NewBuilder()
	b.SetArrayLength(0)
	if _, err := b.Value(); err == nil {
		t.Error("SetArrayLength with no open array went undetected")
	}
}

// The suggestion envelope shape: an outer postponed array of term blocks,
// each a fixed triple whose third element is a fixed array of score pairs.
func TestNestedEnvelope(t *testing.T) {
	b := NewBuilder()
	b.PostponedArray()

	b.Array(3)
	b.String("TERM")
	b.String("helo")
	b.Array(2)
	b.Array(2)
	b.Double(0.25)
	b.String("help")
	b.Array(2)
	b.Double(0.5)
	b.String("hello")

	b.SetArrayLength(1)

	v, err := b.Value()
	if err != nil {
		t.Fatal(err)
	}
	want := []any{
		[]any{"TERM", "helo", []any{
			[]any{0.25, "help"},
			[]any{0.5, "hello"},
		}},
	}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("Value() = %#v, want %#v", v, want)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	b := NewBuilder()
	b.Array(2)
	b.Double(0.5)
	b.String("hello")

	data, err := b.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var decoded []any
	if err := msgpack.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 || decoded[0] != 0.5 || decoded[1] != "hello" {
		t.Errorf("decoded = %v", decoded)
	}
}
