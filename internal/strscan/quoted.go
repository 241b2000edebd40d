package strscan

import "github.com/ironleaf-games/kvtext/internal/cursor"

// ScanQuotedNoUnicode reads a quoted string literal the way KV1 and KV3
// do (spec §4.3a): no \u decoding, and any run of one or more
// consecutive backslashes collapses to a single emitted '/' — the byte
// immediately following the run is then scanned normally, not consumed
// as part of the escape. Preconditions: cur is positioned on the opening
// quote. On success the cursor sits just past the closing quote; on
// error it sits at the offending byte and errMsg is non-empty.
func ScanQuotedNoUnicode(cur *cursor.Cursor) (content []byte, errMsg string) {
	cur.Advance() // past opening quote
	out := make([]byte, 0, 32)

	for {
		b := cur.Byte()
		switch {
		case b == '"':
			cur.Advance()
			return out, ""
		case b == 0:
			return nil, "unexpected end of string"
		case b == '\\':
			for cur.Byte() == '\\' {
				cur.Advance()
			}
			out = append(out, '/')
		default:
			out = append(out, b)
			cur.Advance()
		}
	}
}
