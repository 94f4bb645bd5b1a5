package expr

import (
	"strconv"
	"strings"
)

// String renders n in infix notation, e.g. "sin((x0 * 1.5))".
func String(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	mod := n.Modifier()
	if mod != ModNone {
		sb.WriteString(mod.String())
		sb.WriteByte('(')
	}

	switch v := n.(type) {
	case *Constant:
		sb.WriteString(strconv.FormatFloat(v.Val, 'g', 4, 64))
	case *Parameter:
		sb.WriteByte('x')
		sb.WriteString(strconv.Itoa(v.Index))
	case *Binary:
		sb.WriteByte('(')
		writeNode(sb, v.Left)
		sb.WriteByte(' ')
		sb.WriteString(v.Op.String())
		sb.WriteByte(' ')
		writeNode(sb, v.Right)
		sb.WriteByte(')')
	}

	if mod != ModNone {
		sb.WriteByte(')')
	}
}
