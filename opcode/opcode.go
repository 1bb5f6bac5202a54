package opcode

// Kind identifies one of the recognized byte-transform operations.
type Kind int

const (
	// KindUnknown marks an instruction whose text matched no known shape.
	KindUnknown Kind = iota
	// KindAdd is (n + offset) % 256.
	KindAdd
	// KindSubWrap is (n - offset + 256) % 256.
	KindSubWrap
	// KindXor is n ^ mask.
	KindXor
	// KindNot is ~n & 255.
	KindNot
	// KindNibbleSwap is (n << L | (n & 0xFF) >> R) & 255.
	KindNibbleSwap
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAdd:
		return "add"
	case KindSubWrap:
		return "subwrap"
	case KindXor:
		return "xor"
	case KindNot:
		return "not"
	case KindNibbleSwap:
		return "nibbleswap"
	default:
		return "unknown"
	}
}

// Op is one classified byte-transform operation. Raw always holds the trimmed
// instruction text the operation was classified from.
type Op struct {
	Kind   Kind
	Arg    int // offset for Add/SubWrap, mask for Xor
	LShift int // NibbleSwap only
	RShift int // NibbleSwap only
	Raw    string
}

// Eval applies the operation to n. Results are normalized into [0, 255] with
// explicit wraparound, so negative inputs and intermediates never leak a
// negative byte. Evaluating a KindUnknown op fails with UNSUPPORTED_OPERATION
// carrying the raw instruction text.
func (op Op) Eval(n int64) (int, error) {
	switch op.Kind {
	case KindAdd:
		return wrap256(n + int64(op.Arg)), nil
	case KindSubWrap:
		return wrap256(n - int64(op.Arg) + 256), nil
	case KindXor:
		return int(n ^ int64(op.Arg)), nil
	case KindNot:
		return int(^n & 255), nil
	case KindNibbleSwap:
		return int((n<<op.LShift | (n&0xFF)>>op.RShift) & 255), nil
	default:
		return 0, NewError(ErrCodeUnsupportedOperation, "instruction matches no known shape", op.Raw)
	}
}

// wrap256 normalizes x into [0, 255]. Go's % keeps the sign of the dividend,
// so a plain x%256 can be negative.
func wrap256(x int64) int {
	return int((x%256 + 256) % 256)
}
