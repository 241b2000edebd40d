package kv0

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/ironleaf-games/kvtext/internal/cursor"
	"github.com/ironleaf-games/kvtext/pkg/kv"
)

// FileSystem is the narrow "read whole file as bytes, list a directory"
// interface the KV0 include resolver needs (spec §1 "out of scope: file
// I/O wrapping ... only the interface is assumed").
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(dir string) ([]string, error)
}

// osFileSystem is the default FileSystem, backed by the os package.
type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (osFileSystem) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// prepareFileInput strips a leading UTF-8 BOM (KV0-file mode only, spec
// §6.3) and rejects input that looks like UTF-16/UTF-32 (a NUL among
// the first two bytes).
func prepareFileInput(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bom) {
		data = data[len(bom):]
	}
	if len(data) >= 2 && (data[0] == 0 || data[1] == 0) {
		return nil, kv.NewLexicalError("input appears to be UTF-16 or UTF-32 encoded", 0)
	}
	return data, nil
}

// DecodeFileArray implements spec §6.1 "decode_file_array": it loads
// path, resolves any #include references (spec §4.7) relative to path's
// directory, and wraps the decoded tree under an outer object keyed by
// the root file's leaf name. Each of the root's own direct includes is
// promoted to a sibling of that root entry, one level flat (matching
// the two-file form of the include example); any include of an include
// nests inside its own including file's entry instead of flattening
// further, so a three-file chain A -> B -> C yields
// outer[B][C] == decoded C rather than a third top-level sibling.
func DecodeFileArray(fsys FileSystem, path string, cfg *Config) (*kv.Value, error) {
	if fsys == nil {
		fsys = osFileSystem{}
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	abs := filepath.Clean(path)
	visiting := map[string]bool{abs: true}
	defer delete(visiting, abs)

	decoded, includes, err := readAndParseFile(fsys, path, cfg)
	if err != nil {
		return nil, err
	}

	outer := kv.Object()
	outer.Set(filepath.Base(path), decoded)

	dir := filepath.Dir(path)
	for _, inc := range includes {
		incPath := filepath.Join(dir, inc)
		incTree, err := decodeFile(fsys, incPath, cfg, visiting)
		if err != nil {
			return nil, err
		}
		outer.Set(filepath.Base(incPath), incTree)
	}
	return outer, nil
}

// decodeFile decodes a non-root file reached via #include: its own
// decoded body, with each of its own includes merged in as a member
// keyed by that include's leaf name (nested inside this file's own
// object rather than promoted past it).
func decodeFile(fsys FileSystem, path string, cfg *Config, visiting map[string]bool) (*kv.Value, error) {
	abs := filepath.Clean(path)
	if visiting[abs] {
		return nil, kv.NewIOError(fmt.Sprintf("circular #include of %q", filepath.Base(path)), nil)
	}
	visiting[abs] = true
	defer delete(visiting, abs)

	decoded, includes, err := readAndParseFile(fsys, path, cfg)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, inc := range includes {
		incPath := filepath.Join(dir, inc)
		incTree, err := decodeFile(fsys, incPath, cfg, visiting)
		if err != nil {
			return nil, err
		}
		decoded.Set(filepath.Base(incPath), incTree)
	}
	return decoded, nil
}

// readAndParseFile loads path, strips its #include pre-pass, and parses
// the remaining body, without touching any of its includes' content.
func readAndParseFile(fsys FileSystem, path string, cfg *Config) (*kv.Value, []string, error) {
	raw, err := fsys.ReadFile(path)
	if err != nil {
		return nil, nil, includeError(fsys, path, err)
	}

	data, err := prepareFileInput(raw)
	if err != nil {
		return nil, nil, err
	}

	body, includes, err := resolveIncludes(data)
	if err != nil {
		return nil, nil, err
	}

	decoded, err := Decode(body, cfg)
	if err != nil {
		return nil, nil, err
	}
	return decoded, includes, nil
}

// includeError annotates a missing-include failure with a fuzzy-matched
// suggestion drawn from the including file's own directory, mirroring
// the "did you mean" diagnostics the teacher's planner produces for an
// unresolved name.
func includeError(fsys FileSystem, path string, cause error) error {
	if !os.IsNotExist(cause) {
		return kv.NewIOError(fmt.Sprintf("could not open %q", path), cause)
	}
	siblings, listErr := fsys.ReadDir(filepath.Dir(path))
	if listErr != nil || len(siblings) == 0 {
		return kv.NewIOError(fmt.Sprintf("could not open %q", path), cause)
	}
	if best := fuzzy.RankFindFold(filepath.Base(path), siblings); len(best) > 0 {
		return kv.NewIOError(
			fmt.Sprintf("could not open %q (did you mean %q?)", path, best[0].Target), cause)
	}
	return kv.NewIOError(fmt.Sprintf("could not open %q", path), cause)
}

// resolveIncludes runs the spec §4.7 pre-pass: it honors WHITESPACE,
// COMMENT and REF tokens only, collecting each #include's quoted path.
// The first token of any other kind ends the pre-pass; body is the
// remainder of data starting at that token, ready for normal parsing.
func resolveIncludes(data []byte) (body []byte, includes []string, err error) {
	cur := cursor.New(data)
	t := &tokenizer{cur: cur, cfg: DefaultConfig(), scratch: make([]byte, 0, 64)}

	for {
		before := cur.Pos()
		tok := t.Next()
		switch tok.Kind {
		case kv.TokRef:
			// Skip a directive word such as "include" written after '#'.
			for b := cur.Byte(); (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'); b = cur.Byte() {
				cur.Advance()
			}
			pathTok := t.Next()
			if pathTok.Kind != kv.TokString {
				return nil, nil, kv.NewStructuralError("Expected a quoted include path", pathTok.Offset)
			}
			includes = append(includes, pathTok.Str)
		case kv.TokError:
			return nil, nil, kv.NewLexicalError(tok.ErrMsg, tok.Offset)
		default:
			cur.SeekPos(before)
			return data[before:], includes, nil
		}
	}
}
