package jdeob

// PassKind names one of the graph rewrites of the deobfuscator.
type PassKind uint8

const (
	PopRanges PassKind = iota
	EmptyHandlerBlocks
	EmptyRanges
	CircularRanges
	MultipleEntryRanges
	DummyHandlerBlocks
)

func (k PassKind) String() string {
	switch k {
	case PopRanges:
		return "RestorePopRanges"
	case EmptyHandlerBlocks:
		return "InsertEmptyExceptionHandlerBlocks"
	case EmptyRanges:
		return "RemoveEmptyRanges"
	case CircularRanges:
		return "RemoveCircularRanges"
	case MultipleEntryRanges:
		return "HandleMultipleEntryExceptionRanges"
	case DummyHandlerBlocks:
		return "InsertDummyExceptionHandlerBlocks"
	default:
		return "Unknown"
	}
}
