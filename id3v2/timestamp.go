package id3v2

import (
	"regexp"
	"strconv"
	"strings"
)

// Timestamp is a partially specified point in time as used by the v2.4
// timestamp frames (TDRC and friends). Fields are -1 when absent; presence
// is strictly left to right, so an absent Month hides Day and everything
// after it.
type Timestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

var timestampSplit = regexp.MustCompile(`[-T:/.]|\s+`)

// ParseTimestamp parses a (possibly truncated) ID3v2.4 timestamp string.
// Components that fail to parse are treated as absent.
func ParseTimestamp(text string) Timestamp {
	parts := timestampSplit.Split(text+":::::", -1)
	get := func(i int) int {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 {
			return -1
		}
		return n
	}
	return Timestamp{
		Year:   get(0),
		Month:  get(1),
		Day:    get(2),
		Hour:   get(3),
		Minute: get(4),
		Second: get(5),
	}
}

// String formats the timestamp with the separators ID3v2.4 prescribes,
// except that a space stands between date and time for readability. Output
// stops at the first absent component.
func (t Timestamp) String() string {
	var b strings.Builder
	write := func(v, width int, sep string) bool {
		if v < 0 {
			return false
		}
		b.WriteString(sep)
		s := strconv.Itoa(v)
		for len(s) < width {
			s = "0" + s
		}
		b.WriteString(s)
		return true
	}
	if !write(t.Year, 4, "") {
		return ""
	}
	if !write(t.Month, 2, "-") {
		return b.String()
	}
	if !write(t.Day, 2, "-") {
		return b.String()
	}
	if !write(t.Hour, 2, " ") {
		return b.String()
	}
	if !write(t.Minute, 2, ":") {
		return b.String()
	}
	write(t.Second, 2, ":")
	return b.String()
}

// wire formats the timestamp for serialization, with 'T' separating date
// and time as the standard requires.
func (t Timestamp) wire() string {
	return strings.Replace(t.String(), " ", "T", 1)
}

// Equal reports whether two timestamps denote the same value.
func (t Timestamp) Equal(o Timestamp) bool {
	return t.String() == o.String()
}
