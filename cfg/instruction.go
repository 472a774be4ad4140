package cfg

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Instruction is a decoded bytecode instruction. Its operands are opaque to
// the deobfuscation passes.
type Instruction struct {
	Opcode   Opcode
	Operands []int
}

// Instr returns an instruction with the given opcode and operands.
func Instr(op Opcode, operands ...int) Instruction {
	return Instruction{Opcode: op, Operands: operands}
}

// Clone returns a deep copy of the instruction.
func (i Instruction) Clone() Instruction {
	return Instruction{Opcode: i.Opcode, Operands: slices.Clone(i.Operands)}
}

// String returns the instruction in assembler form, e.g. "astore 1".
func (i Instruction) String() string {
	var sb strings.Builder
	sb.WriteString(i.Opcode.String())
	for _, op := range i.Operands {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(op))
	}
	return sb.String()
}

// ParseInstruction parses an instruction in assembler form.
func ParseInstruction(s string) (Instruction, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Instruction{}, errors.New("empty instruction")
	}
	op, ok := ParseOpcode(fields[0])
	if !ok {
		return Instruction{}, fmt.Errorf("unknown opcode %q", fields[0])
	}
	instr := Instruction{Opcode: op}
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Instruction{}, fmt.Errorf("operand %q of %s: %w", f, op, err)
		}
		instr.Operands = append(instr.Operands, v)
	}
	return instr, nil
}

// Sequence is the ordered instruction list of a basic block.
type Sequence struct {
	instrs []Instruction
}

// NewSequence returns a sequence holding the given instructions.
func NewSequence(instrs ...Instruction) *Sequence {
	return &Sequence{instrs: slices.Clone(instrs)}
}

// Len returns the number of instructions.
func (s *Sequence) Len() int {
	return len(s.instrs)
}

// IsEmpty reports whether the sequence has no instructions.
func (s *Sequence) IsEmpty() bool {
	return len(s.instrs) == 0
}

// Instr returns the i-th instruction.
func (s *Sequence) Instr(i int) Instruction {
	return s.instrs[i]
}

// Instructions returns a copy of all instructions.
func (s *Sequence) Instructions() []Instruction {
	return slices.Clone(s.instrs)
}

// Add appends an instruction.
func (s *Sequence) Add(instr Instruction) {
	s.instrs = append(s.instrs, instr)
}

// Remove deletes the i-th instruction.
func (s *Sequence) Remove(i int) {
	s.instrs = slices.Delete(s.instrs, i, i+1)
}

// Clone returns a deep copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	c := &Sequence{instrs: make([]Instruction, len(s.instrs))}
	for i, instr := range s.instrs {
		c.instrs[i] = instr.Clone()
	}
	return c
}

// String returns the instructions separated by "; ".
func (s *Sequence) String() string {
	parts := make([]string, len(s.instrs))
	for i, instr := range s.instrs {
		parts[i] = instr.String()
	}
	return strings.Join(parts, "; ")
}
