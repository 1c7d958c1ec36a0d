package textpattern

import (
	"regexp"
	"strings"
)

// stopTokens end a logical record. Statement footers and page headers would otherwise be
// merged into the description of the last transaction above them.
var stopTokens = []string{"saldo", "total", "fecha", "página", "pagina", "page"}

// Record is one logical line: the physical line that carried the grammar's leading anchor
// plus the continuation lines that followed it.
type Record struct {
	Head          string
	Continuations []string
}

// Joined is the record as a single line, fragments separated by one space.
func (r Record) Joined() string {
	if len(r.Continuations) == 0 {
		return r.Head
	}
	return r.Head + " " + strings.Join(r.Continuations, " ")
}

// JoinContinuations splits text into logical records for a grammar whose records start with
// anchor. Lines before the first anchor are ignored. A blank line or a line whose first word
// is a stop token closes the current record.
func JoinContinuations(text string, anchor *regexp.Regexp) []Record {
	var (
		out []Record
		cur *Record
	)
	flush := func() {
		if cur != nil {
			out = append(out, *cur)
			cur = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.Join(strings.Fields(raw), " ")
		switch {
		case line == "":
			flush()
		case anchor.MatchString(line):
			flush()
			cur = &Record{Head: line}
		case isStopLine(line):
			flush()
		case cur != nil:
			cur.Continuations = append(cur.Continuations, line)
		}
	}
	flush()
	return out
}

// isStopLine reports whether the first word of line is a stop token. Longer words that only
// start with one (TOTALGAS, SALDOS) are ordinary continuations.
func isStopLine(line string) bool {
	first := strings.ToLower(strings.SplitN(line, " ", 2)[0])
	first = strings.TrimRight(first, ":.,;-")
	for _, t := range stopTokens {
		if first == t {
			return true
		}
	}
	return false
}
