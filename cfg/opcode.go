package cfg

import "fmt"

// Opcode is a JVM instruction opcode.
type Opcode uint8

// Opcodes understood by name. The passes only ever inspect pop/astore and
// create bipush/pop; the rest exist so graphs can be written down readably.
const (
	OpNop             Opcode = 0x00
	OpAconstNull      Opcode = 0x01
	OpIconst0         Opcode = 0x03
	OpIconst1         Opcode = 0x04
	OpBipush          Opcode = 0x10
	OpSipush          Opcode = 0x11
	OpLdc             Opcode = 0x12
	OpIload           Opcode = 0x15
	OpAload           Opcode = 0x19
	OpIstore          Opcode = 0x36
	OpAstore          Opcode = 0x3a
	OpPop             Opcode = 0x57
	OpPop2            Opcode = 0x58
	OpDup             Opcode = 0x59
	OpIadd            Opcode = 0x60
	OpIinc            Opcode = 0x84
	OpIfeq            Opcode = 0x99
	OpIfne            Opcode = 0x9a
	OpGoto            Opcode = 0xa7
	OpJsr             Opcode = 0xa8
	OpRet             Opcode = 0xa9
	OpTableswitch     Opcode = 0xaa
	OpLookupswitch    Opcode = 0xab
	OpIreturn         Opcode = 0xac
	OpAreturn         Opcode = 0xb0
	OpReturn          Opcode = 0xb1
	OpGetstatic       Opcode = 0xb2
	OpPutstatic       Opcode = 0xb3
	OpGetfield        Opcode = 0xb4
	OpPutfield        Opcode = 0xb5
	OpInvokevirtual   Opcode = 0xb6
	OpInvokespecial   Opcode = 0xb7
	OpInvokestatic    Opcode = 0xb8
	OpInvokeinterface Opcode = 0xb9
	OpNew             Opcode = 0xbb
	OpAthrow          Opcode = 0xbf
	OpCheckcast       Opcode = 0xc0
	OpMonitorenter    Opcode = 0xc2
	OpMonitorexit     Opcode = 0xc3
)

var mnemonics = map[Opcode]string{
	OpNop:             "nop",
	OpAconstNull:      "aconst_null",
	OpIconst0:         "iconst_0",
	OpIconst1:         "iconst_1",
	OpBipush:          "bipush",
	OpSipush:          "sipush",
	OpLdc:             "ldc",
	OpIload:           "iload",
	OpAload:           "aload",
	OpIstore:          "istore",
	OpAstore:          "astore",
	OpPop:             "pop",
	OpPop2:            "pop2",
	OpDup:             "dup",
	OpIadd:            "iadd",
	OpIinc:            "iinc",
	OpIfeq:            "ifeq",
	OpIfne:            "ifne",
	OpGoto:            "goto",
	OpJsr:             "jsr",
	OpRet:             "ret",
	OpTableswitch:     "tableswitch",
	OpLookupswitch:    "lookupswitch",
	OpIreturn:         "ireturn",
	OpAreturn:         "areturn",
	OpReturn:          "return",
	OpGetstatic:       "getstatic",
	OpPutstatic:       "putstatic",
	OpGetfield:        "getfield",
	OpPutfield:        "putfield",
	OpInvokevirtual:   "invokevirtual",
	OpInvokespecial:   "invokespecial",
	OpInvokestatic:    "invokestatic",
	OpInvokeinterface: "invokeinterface",
	OpNew:             "new",
	OpAthrow:          "athrow",
	OpCheckcast:       "checkcast",
	OpMonitorenter:    "monitorenter",
	OpMonitorexit:     "monitorexit",
}

var opcodes = func() map[string]Opcode {
	m := make(map[string]Opcode, len(mnemonics))
	for op, name := range mnemonics {
		m[name] = op
	}
	return m
}()

// String returns the mnemonic of the opcode, or its hex value if unknown.
func (op Opcode) String() string {
	if name, ok := mnemonics[op]; ok {
		return name
	}
	return fmt.Sprintf("op_%#02x", uint8(op))
}

// ParseOpcode returns the opcode with the given mnemonic.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodes[name]
	return op, ok
}

// IsStackPop reports whether the opcode consumes the caught exception at the
// start of a handler: either discarding it or binding it to a local.
func (op Opcode) IsStackPop() bool {
	return op == OpPop || op == OpAstore
}
