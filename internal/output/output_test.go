package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	date := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		pattern string
		want    string
	}{
		{"yyyy-MM-dd", "2024-06-05"},
		{"d/M/yy", "5/6/24"},
		{"dd.MM.yyyy", "05.06.2024"},
		{"ddd, d MMM yyyy", "Wed, 5 Jun 2024"},
		{"dddd d MMMM", "Wednesday 5 June"},
		{"'Day' d", "Day 5"},
		{"d 'o''clock'", "5 o'clock"},
		{"''yy''", "'24'"},
		{"yyyy%M", "2024%6"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(date, tt.pattern))
		})
	}
}

func TestFormatDateLocaleDefault(t *testing.T) {
	date := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC)

	t.Setenv("LC_ALL", "en_US.UTF-8")
	assert.Equal(t, "06/05/2024", FormatDate(date, ""))

	t.Setenv("LC_ALL", "de_DE.UTF-8")
	assert.Equal(t, "05.06.2024", FormatDate(date, ""))

	t.Setenv("LC_ALL", "C")
	assert.Equal(t, "2024-06-05", FormatDate(date, ""))
}

func TestEntry(t *testing.T) {
	assert.Equal(t, "hello world", Entry("hello world", EntryText))
	assert.Equal(t, "42", Entry("42", EntryInt))
	assert.Equal(t, "-7", Entry(" -7abc", EntryInt))
	assert.Equal(t, "0", Entry("abc", EntryInt))
	assert.Equal(t, "3.14", Entry("3.14159", EntryFloat))
	assert.Equal(t, "2.00", Entry("2", EntryFloat))
	assert.Equal(t, "0.00", Entry("nope", EntryFloat))
}

func TestPassword(t *testing.T) {
	assert.Equal(t, "alice|s3cret", Password("alice", true, "s3cret"))
	assert.Equal(t, "s3cret", Password("", false, "s3cret"))
	assert.Equal(t, "|pw", Password("", true, "pw"))
}

func TestRows(t *testing.T) {
	rows := [][]string{{"a", "b"}, {"c", "d"}}
	assert.Equal(t, "a|b;c|d", Rows(rows, "|", ";"))
	assert.Equal(t, "", Rows(nil, "|", "|"))
}

func TestColumnSelector(t *testing.T) {
	row := []string{"TRUE", "apple", "red"}

	sel, err := ParseColumnSelector("")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple"}, sel.Pick(row, 1))
	assert.Equal(t, []string{"TRUE"}, sel.Pick(row, 0))

	sel, err = ParseColumnSelector("ALL")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "red"}, sel.Pick(row, 1))

	sel, err = ParseColumnSelector("3, 2")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "apple"}, sel.Pick(row, 1))

	sel, err = ParseColumnSelector("9")
	require.NoError(t, err)
	assert.Empty(t, sel.Pick(row, 1))

	_, err = ParseColumnSelector("x")
	assert.Error(t, err)
	_, err = ParseColumnSelector("0")
	assert.Error(t, err)
}

func TestColor(t *testing.T) {
	c, err := colorful.Hex("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, "rgb(255,128,0)", Color(c))
}

func TestLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Line(&buf, "2024-06-05"))
	assert.Equal(t, "2024-06-05\n", buf.String())
}
