// Package vm implements the stack-based fetch-decode-execute loop that runs
// a compiled bytecode.Chunk.
package vm

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/glyphlang/glox/internal/glxerrors"
	"github.com/glyphlang/glox/internal/lang/bytecode"
	"github.com/glyphlang/glox/internal/lang/compiler"
	"github.com/glyphlang/glox/internal/lang/value"
)

const initialStackCapacity = 256

// InstrHook is invoked once per executed instruction, named by opcode. Used
// to drive the glox_vm_instructions_total metric without coupling vm to the
// metrics package.
type InstrHook func(op bytecode.OpCode)

// DepthHook is invoked with the current stack depth after every push and
// pop. Used to drive the glox_vm_stack_depth gauge without coupling vm to
// the metrics package.
type DepthHook func(depth int)

// VM executes one Chunk at a time against a persistent globals map.
type VM struct {
	chunk   *bytecode.Chunk
	ip      int
	stack   []value.Value
	globals map[string]value.Value

	Stdout    io.Writer
	Trace     bool
	Hook      InstrHook
	DepthHook DepthHook
}

// New returns an empty VM with a fresh globals map.
func New() *VM {
	return &VM{
		stack:   make([]value.Value, 0, initialStackCapacity),
		globals: make(map[string]value.Value),
		Stdout:  os.Stdout,
	}
}

// Interpret compiles and runs source against the VM's persistent globals.
// The value stack is reset before each top-level call (see DESIGN.md on the
// REPL stack-reset decision); globals persist across calls.
func (vm *VM) Interpret(source string) error {
	chunk, err := compiler.New().Compile(source)
	if err != nil {
		return err
	}
	return vm.Run(chunk)
}

// Run executes chunk from offset 0, resetting the stack first.
func (vm *VM) Run(chunk *bytecode.Chunk) error {
	vm.chunk = chunk
	vm.ip = 0
	vm.resetStack()

	for {
		if vm.Trace {
			vm.printTraceLine()
		}

		op := bytecode.OpCode(vm.readByte())
		if vm.Hook != nil {
			vm.Hook(op)
		}

		switch op {
		case bytecode.OpConstant:
			vm.push(vm.chunk.GetConstant(int(vm.readByte())))
		case bytecode.OpLongConstant:
			vm.push(vm.chunk.GetConstant(vm.readLongID()))
		case bytecode.OpNil:
			vm.push(value.Nil)
		case bytecode.OpTrue:
			vm.push(value.Bool(true))
		case bytecode.OpFalse:
			vm.push(value.Bool(false))
		case bytecode.OpPop:
			if _, err := vm.pop(); err != nil {
				return err
			}
		case bytecode.OpGetGlobal:
			if err := vm.getGlobal(int(vm.readByte())); err != nil {
				return err
			}
		case bytecode.OpGetLongGlobal:
			if err := vm.getGlobal(vm.readLongID()); err != nil {
				return err
			}
		case bytecode.OpDefineGlobal:
			if err := vm.defineGlobal(int(vm.readByte())); err != nil {
				return err
			}
		case bytecode.OpDefineLongGlobal:
			if err := vm.defineGlobal(vm.readLongID()); err != nil {
				return err
			}
		case bytecode.OpSetGlobal:
			if err := vm.setGlobal(int(vm.readByte())); err != nil {
				return err
			}
		case bytecode.OpSetLongGlobal:
			if err := vm.setGlobal(vm.readLongID()); err != nil {
				return err
			}
		case bytecode.OpEqual:
			b, err := vm.pop()
			if err != nil {
				return err
			}
			a, err := vm.pop()
			if err != nil {
				return err
			}
			vm.push(value.Bool(value.Equal(a, b)))
		case bytecode.OpGreater:
			if err := vm.numericCompare(func(a, b float64) bool { return a > b }); err != nil {
				return err
			}
		case bytecode.OpLess:
			if err := vm.numericCompare(func(a, b float64) bool { return a < b }); err != nil {
				return err
			}
		case bytecode.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case bytecode.OpSubtract:
			if err := vm.numericBinary(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case bytecode.OpMultiply:
			if err := vm.numericBinary(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case bytecode.OpDivide:
			if err := vm.numericBinary(func(a, b float64) float64 { return a / b }); err != nil {
				return err
			}
		case bytecode.OpRemainder:
			if err := vm.numericBinary(math.Mod); err != nil {
				return err
			}
		case bytecode.OpNot:
			v, err := vm.pop()
			if err != nil {
				return err
			}
			vm.push(value.Bool(!v.Truthy()))
		case bytecode.OpNegate:
			v, err := vm.pop()
			if err != nil {
				return err
			}
			if !v.IsNumber() {
				return vm.runtimeError("Operand must be a number; got %s.", value.TypeName(v))
			}
			vm.push(value.Number(-v.AsNumber()))
		case bytecode.OpPrint:
			v, err := vm.pop()
			if err != nil {
				return err
			}
			fmt.Fprintln(vm.Stdout, value.Display(v))
		case bytecode.OpReturn:
			return nil
		default:
			return glxerrors.NewInternal("unknown opcode %d at offset %d", op, vm.ip-1)
		}
	}
}

func (vm *VM) resetStack() {
	vm.stack = vm.stack[:0]
}

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
	vm.reportDepth()
}

func (vm *VM) pop() (value.Value, error) {
	if len(vm.stack) == 0 {
		return value.Value{}, glxerrors.NewInternal("stack underflow at offset %d", vm.ip)
	}
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	vm.reportDepth()
	return v, nil
}

func (vm *VM) reportDepth() {
	if vm.DepthHook != nil {
		vm.DepthHook(len(vm.stack))
	}
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readLongID() int {
	id := int(vm.readByte()) << 16
	id |= int(vm.readByte()) << 8
	id |= int(vm.readByte())
	return id
}

func (vm *VM) getGlobal(id int) error {
	name := vm.chunk.GetConstant(id).AsString()
	v, ok := vm.globals[name]
	if !ok {
		return vm.runtimeError("Undefined variable.")
	}
	vm.push(v)
	return nil
}

func (vm *VM) defineGlobal(id int) error {
	name := vm.chunk.GetConstant(id).AsString()
	v, err := vm.pop()
	if err != nil {
		return err
	}
	vm.globals[name] = v
	return nil
}

func (vm *VM) setGlobal(id int) error {
	name := vm.chunk.GetConstant(id).AsString()
	if _, ok := vm.globals[name]; !ok {
		return vm.runtimeError("Undefined variable.")
	}
	vm.globals[name] = vm.peek(0)
	return nil
}

func (vm *VM) numericBinary(f func(a, b float64) float64) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Both operands must be numbers.")
	}
	b, _ := vm.pop()
	a, _ := vm.pop()
	vm.push(value.Number(f(a.AsNumber(), b.AsNumber())))
	return nil
}

func (vm *VM) numericCompare(f func(a, b float64) bool) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Both operands must be numbers.")
	}
	b, _ := vm.pop()
	a, _ := vm.pop()
	vm.push(value.Bool(f(a.AsNumber(), b.AsNumber())))
	return nil
}

func (vm *VM) add() error {
	if vm.peek(0).IsString() && vm.peek(1).IsString() {
		b, _ := vm.pop()
		a, _ := vm.pop()
		vm.push(value.String(a.AsString() + b.AsString()))
		return nil
	}
	return vm.numericBinary(func(a, b float64) float64 { return a + b })
}

func (vm *VM) runtimeError(format string, args ...any) error {
	offset := vm.ip - 1
	line := vm.chunk.GetLine(offset)
	err := glxerrors.NewRuntime(line, format, args...)
	vm.resetStack()
	return err
}

func (vm *VM) printTraceLine() {
	fmt.Fprint(vm.Stdout, "          ")
	for _, v := range vm.stack {
		fmt.Fprintf(vm.Stdout, "[ %s ]", value.Display(v))
	}
	fmt.Fprintln(vm.Stdout)
	vm.chunk.DisassembleInstruction(vm.Stdout, vm.ip)
}
