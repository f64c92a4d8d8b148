package output

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ISODatePattern is used when the locale gives no better answer.
const ISODatePattern = "yyyy-MM-dd"

// DefaultDatePattern picks the locale's short date pattern from LC_ALL,
// LC_TIME or LANG.
func DefaultDatePattern() string {
	locale := ""
	for _, env := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if v := os.Getenv(env); v != "" {
			locale = v
			break
		}
	}
	return datePatternForLocale(locale)
}

func datePatternForLocale(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch locale {
	case "en_US", "en_PH":
		return "MM/dd/yyyy"
	case "en_GB", "en_IE", "en_AU", "en_NZ", "fr_FR", "es_ES", "it_IT", "pt_BR", "pt_PT":
		return "dd/MM/yyyy"
	case "de_DE", "de_AT", "de_CH", "ru_RU", "pl_PL", "fi_FI", "nb_NO", "cs_CZ":
		return "dd.MM.yyyy"
	case "nl_NL":
		return "dd-MM-yyyy"
	case "ja_JP", "zh_CN", "zh_TW", "ko_KR", "hu_HU":
		return "yyyy/MM/dd"
	}
	return ISODatePattern
}

// FormatDate renders t using a Qt-style date pattern:
//
//	d dd ddd dddd   day, zero padded day, short and long weekday name
//	M MM MMM MMMM   month, zero padded month, short and long month name
//	yy yyyy         two and four digit year
//
// Text between single quotes is copied literally and '' is a quote. Any
// other character is copied as is. An empty pattern uses the locale default.
func FormatDate(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultDatePattern()
	}

	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			i = writeQuoted(&b, pattern, i+1)
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}

		switch c {
		case 'd':
			writeDay(&b, t, n)
		case 'M':
			writeMonth(&b, t, n)
		case 'y':
			writeYear(&b, t, n)
		default:
			b.WriteString(pattern[i : i+n])
		}
		i += n
	}
	return b.String()
}

// writeQuoted copies quoted literal text starting at i and returns the index
// just past the closing quote. '' inside the literal is a quote.
func writeQuoted(b *strings.Builder, pattern string, i int) int {
	for i < len(pattern) {
		if pattern[i] != '\'' {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '\'' {
			b.WriteByte('\'')
			i += 2
			continue
		}
		return i + 1
	}
	return i
}

func writeDay(b *strings.Builder, t time.Time, n int) {
	for n > 0 {
		switch {
		case n >= 4:
			b.WriteString(t.Weekday().String())
			n -= 4
		case n == 3:
			b.WriteString(t.Weekday().String()[:3])
			n -= 3
		case n == 2:
			b.WriteString(pad2(t.Day()))
			n -= 2
		default:
			b.WriteString(strconv.Itoa(t.Day()))
			n--
		}
	}
}

func writeMonth(b *strings.Builder, t time.Time, n int) {
	for n > 0 {
		switch {
		case n >= 4:
			b.WriteString(t.Month().String())
			n -= 4
		case n == 3:
			b.WriteString(t.Month().String()[:3])
			n -= 3
		case n == 2:
			b.WriteString(pad2(int(t.Month())))
			n -= 2
		default:
			b.WriteString(strconv.Itoa(int(t.Month())))
			n--
		}
	}
}

func writeYear(b *strings.Builder, t time.Time, n int) {
	for n > 0 {
		switch {
		case n >= 4:
			b.WriteString(strconv.Itoa(t.Year()))
			n -= 4
		case n >= 2:
			b.WriteString(pad2(t.Year() % 100))
			n -= 2
		default:
			// A lone y is not a Qt year field.
			b.WriteByte('y')
			n--
		}
	}
}

func pad2(v int) string {
	if v < 10 && v >= 0 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
