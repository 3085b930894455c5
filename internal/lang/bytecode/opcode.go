package bytecode

// OpCode is a one-byte bytecode instruction tag.
type OpCode byte

const (
	OpConstant OpCode = iota
	OpLongConstant
	OpNil
	OpTrue
	OpFalse
	OpPop
	OpGetGlobal
	OpGetLongGlobal
	OpDefineGlobal
	OpDefineLongGlobal
	OpSetGlobal
	OpSetLongGlobal
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpRemainder
	OpNot
	OpNegate
	OpPrint
	OpReturn
)

var opNames = map[OpCode]string{
	OpConstant: "OP_CONSTANT", OpLongConstant: "OP_CONSTANT_LONG",
	OpNil: "OP_NIL", OpTrue: "OP_TRUE", OpFalse: "OP_FALSE", OpPop: "OP_POP",
	OpGetGlobal: "OP_GET_GLOBAL", OpGetLongGlobal: "OP_GET_LONG_GLOBAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL", OpDefineLongGlobal: "OP_DEFINE_LONG_GLOBAL",
	OpSetGlobal: "OP_SET_GLOBAL", OpSetLongGlobal: "OP_SET_LONG_GLOBAL",
	OpEqual: "OP_EQUAL", OpGreater: "OP_GREATER", OpLess: "OP_LESS",
	OpAdd: "OP_ADD", OpSubtract: "OP_SUBTRACT", OpMultiply: "OP_MULTIPLY",
	OpDivide: "OP_DIVIDE", OpRemainder: "OP_REMAINDER",
	OpNot: "OP_NOT", OpNegate: "OP_NEGATE", OpPrint: "OP_PRINT", OpReturn: "OP_RETURN",
}

func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "OP_UNKNOWN"
}

// IsLongForm reports whether op addresses its constant with a 3-byte id.
func IsLongForm(op OpCode) bool {
	switch op {
	case OpLongConstant, OpGetLongGlobal, OpDefineLongGlobal, OpSetLongGlobal:
		return true
	default:
		return false
	}
}

// MaxConstants is the number of constant pool entries addressable by the
// long-form (u24) encoding; valid ids are below it.
const MaxConstants = 1 << 24
