package dispatch

import "strings"

// ReplyKind tags the shape of a Reply
type ReplyKind uint8

const (
	ReplyEmpty    ReplyKind = iota // no value (nil reply)
	ReplySequence                  // ordered list of strings
	ReplyScalar                    // single value
)

// Reply is the reply of a store command
type Reply struct {
	Kind   ReplyKind
	Values []string // set for ReplySequence
	Value  string   // set for ReplyScalar
}

// EmptyReply returns a reply without value
func EmptyReply() Reply {
	return Reply{Kind: ReplyEmpty}
}

// SequenceReply returns a reply holding an ordered list of values
func SequenceReply(values ...string) Reply {
	return Reply{Kind: ReplySequence, Values: values}
}

// ScalarReply returns a reply holding a single value
func ScalarReply(value string) Reply {
	return Reply{Kind: ReplyScalar, Value: value}
}

// Format renders the reply the way redis-cli does when stdout is not a terminal,
// without the final newline.
func (r Reply) Format() string {
	switch r.Kind {
	case ReplySequence:
		return strings.Join(r.Values, "\n")
	case ReplyScalar:
		return r.Value
	default:
		return ""
	}
}

// Truthy reports whether the reply counts as an acknowledgment
func (r Reply) Truthy() bool {
	switch r.Kind {
	case ReplySequence:
		return len(r.Values) > 0
	case ReplyScalar:
		return r.Value != "" && r.Value != "0"
	default:
		return false
	}
}
