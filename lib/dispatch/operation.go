package dispatch

// AdminOp is one of the administrative operations that are broadcast to all
// instances of a namespace.
type AdminOp uint8

const (
	OpPing AdminOp = iota + 1
	OpSave
	OpFlushAll
)

// ParseAdminOp parses an operation token. Tokens are matched exactly, "ping"
// is not an operation.
func ParseAdminOp(token string) (AdminOp, error) {
	switch token {
	case "PING":
		return OpPing, nil
	case "SAVE":
		return OpSave, nil
	case "FLUSHALL":
		return OpFlushAll, nil
	default:
		return 0, &UnrecognizedOperationError{Op: token}
	}
}

// String returns the store command of the operation
func (op AdminOp) String() string {
	switch op {
	case OpPing:
		return "PING"
	case OpSave:
		return "SAVE"
	case OpFlushAll:
		return "FLUSHALL"
	default:
		return "UNKNOWN"
	}
}

// SuccessToken is printed when the operation succeeded on every instance
func (op AdminOp) SuccessToken() string {
	if op == OpPing {
		return "PONG"
	}
	return "OK"
}
