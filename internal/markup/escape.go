// Package markup turns the --text argument of a dialog into terminal text:
// backslash escapes are expanded the way glib's g_strcompress does it, and a
// pango-like markup subset is mapped onto Lip Gloss styles.
package markup

import "strings"

// Compress expands C-style backslash escapes with g_strcompress semantics.
//
// Recognised: \b \f \n \r \t \v and one to three octal digits. Any other
// escaped byte is kept without its backslash (so \\ and \" work), and a
// trailing lone backslash is dropped. The expansion is byte oriented; octal
// values wrap at 0xff.
func Compress(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}

		i++
		if i >= len(s) {
			break
		}

		switch c = s[i]; c {
		case '0', '1', '2', '3', '4', '5', '6', '7':
			var v byte
			end := i + 3
			for ; i < end && i < len(s) && s[i] >= '0' && s[i] <= '7'; i++ {
				v = v*8 + (s[i] - '0')
			}
			out = append(out, v)
			i--
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'v':
			out = append(out, '\v')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

// Escape makes s safe to embed in markup, matching g_markup_escape_text.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&#39;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
