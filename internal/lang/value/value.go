// Package value implements the tagged-variant runtime value representation:
// Nil, Boolean, Number, and Object (currently String-only, shaped for future
// heap-allocated kinds). Strings are interned so repeated literals share one
// backing allocation; equality stays byte-based regardless of interning.
package value

import (
	"math"
	"strconv"

	"github.com/josharian/intern"
)

// Kind tags the active variant of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindBoolean
	KindNumber
	KindObject
)

// ObjectKind tags the variant of a heap-allocated Object.
type ObjectKind int

const (
	ObjString ObjectKind = iota
)

// Object is a heap-allocated, reference-counted value. Go's garbage collector
// performs the actual reclamation; the "reference counting" discipline
// referred to elsewhere is the fact that Values only ever copy a pointer to
// an Object, never its contents, so copies alias one allocation.
type Object struct {
	Kind ObjectKind
	Str  string
}

// NewString returns an interned String Object.
func NewString(s string) *Object {
	return &Object{Kind: ObjString, Str: intern.String(s)}
}

// Value is the tagged union pushed onto the VM stack and stored in the
// constant pool and globals map.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	object *Object
}

// Nil is the singleton Nil value.
var Nil = Value{kind: KindNil}

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// Number constructs a Number value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// NewObject wraps an *Object in a Value.
func NewObject(o *Object) Value { return Value{kind: KindObject, object: o} }

// String constructs a Value wrapping a freshly interned String Object.
func String(s string) Value { return NewObject(NewString(s)) }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBoolean }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObject() bool { return v.kind == KindObject }

func (v Value) IsString() bool {
	return v.kind == KindObject && v.object.Kind == ObjString
}

// AsBool returns the boolean payload; callers must check IsBool first.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload; callers must check IsNumber first.
func (v Value) AsNumber() float64 { return v.n }

// AsObject returns the object payload; callers must check IsObject first.
func (v Value) AsObject() *Object { return v.object }

// AsString returns the string payload; callers must check IsString first.
func (v Value) AsString() string { return v.object.Str }

// Truthy implements the language's truthiness rule: Nil and Boolean(false)
// are falsy, everything else is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBoolean:
		return v.b
	default:
		return true
	}
}

// Equal implements value equality: different variants are never equal;
// strings compare by byte content; other object kinds fall back to identity.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindObject:
		if a.object.Kind == ObjString && b.object.Kind == ObjString {
			return a.object.Str == b.object.Str
		}
		return a.object == b.object
	default:
		return false
	}
}

// Display renders a Value the way `print` emits it.
func Display(v Value) string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		if v.n == math.Trunc(v.n) && math.Abs(v.n) < 1e21 {
			return strconv.FormatFloat(v.n, 'f', -1, 64)
		}
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindObject:
		if v.object.Kind == ObjString {
			return v.object.Str
		}
		return "<object>"
	default:
		return "<unknown>"
	}
}

// TypeName returns the language-facing name of v's variant, used in runtime
// error messages.
func TypeName(v Value) string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindObject:
		if v.object.Kind == ObjString {
			return "string"
		}
		return "object"
	default:
		return "unknown"
	}
}
