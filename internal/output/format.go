// Package output serializes accepted dialogs into the single line written to
// standard output.
package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// EntryMode selects how entry text is serialized.
type EntryMode int

const (
	EntryText EntryMode = iota
	EntryInt
	EntryFloat
)

// Entry serializes entry text. Int mode keeps the leading signed integer of
// the text (0 when there is none); float mode prints two decimals.
func Entry(text string, mode EntryMode) string {
	switch mode {
	case EntryInt:
		return strconv.FormatInt(LeadingInt(text), 10)
	case EntryFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return text
}

// LeadingInt parses an optional sign followed by digits at the start of s.
func LeadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		if s[0] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return v
}

// Password serializes a password dialog as username|password, dropping the
// username segment when the dialog had no username field.
func Password(username string, hasUsername bool, password string) string {
	if !hasUsername {
		return password
	}
	return username + "|" + password
}

// Rows joins the cells of each row with cellSep and the rows with rowSep.
func Rows(rows [][]string, cellSep, rowSep string) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = strings.Join(row, cellSep)
	}
	return strings.Join(parts, rowSep)
}

// Forms joins form field values in declaration order.
func Forms(values []string, sep string) string {
	return strings.Join(values, sep)
}

// Color serializes a colour the way GTK prints an opaque RGBA value.
func Color(c colorful.Color) string {
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

// Line writes s followed by a newline in a single write.
func Line(w io.Writer, s string) error {
	_, err := io.WriteString(w, s+"\n")
	return err
}

// ColumnSelector picks which cells of a list row are printed.
type ColumnSelector struct {
	All     bool
	Indices []int // 1-based
}

// ParseColumnSelector parses a --print-column value: ALL, N, or N,M,...
// An empty spec yields the zero selector, which prints the first data
// column.
func ParseColumnSelector(spec string) (ColumnSelector, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ColumnSelector{}, nil
	}
	if strings.EqualFold(spec, "all") {
		return ColumnSelector{All: true}, nil
	}

	var sel ColumnSelector
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimFunc(part, unicode.IsSpace)
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return ColumnSelector{}, fmt.Errorf("invalid column %q", part)
		}
		sel.Indices = append(sel.Indices, n)
	}
	return sel, nil
}

// Pick returns the selected cells of row. The first skip cells are the
// check column of a checklist or radiolist: they count towards column
// numbers but are never printed by ALL or by the default selection.
func (s ColumnSelector) Pick(row []string, skip int) []string {
	if skip > len(row) {
		skip = len(row)
	}
	if s.All {
		return append([]string{}, row[skip:]...)
	}

	indices := s.Indices
	if len(indices) == 0 {
		indices = []int{skip + 1}
	}

	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 1 && idx <= len(row) {
			out = append(out, row[idx-1])
		}
	}
	return out
}
