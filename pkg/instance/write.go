package instance

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Write encodes inst in the format accepted by Parse.
func Write(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	put := func(v int) {
		bw.WriteString(strconv.Itoa(v))
		bw.WriteByte(' ')
	}

	put(inst.NumVars)
	put(len(inst.Clauses))
	put(0)
	for _, c := range inst.Clauses {
		for _, lit := range c {
			put(lit)
		}
		put(0)
	}
	bw.WriteString("% ")
	for _, weight := range inst.Weights {
		put(weight)
	}
	bw.WriteByte('#')
	return bw.Flush()
}

// Format returns the text encoding of inst.
func Format(inst *Instance) string {
	var sb strings.Builder
	_ = Write(&sb, inst)
	return sb.String()
}
