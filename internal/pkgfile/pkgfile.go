// Package pkgfile implements the pre-lexed package file format (spec.md
// §6.3): a binary token stream that lets an object skip re-lexing on
// every build. Concurrent decode of a project's several package files
// uses golang.org/x/sync/errgroup (SPEC_FULL.md §11) — each file is an
// independent, pure decode, so fanning the reads out is both safe and
// useful; merging the results back into a single AST stays
// single-threaded elsewhere, per spec.md §5.
package pkgfile

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"
)

// Wire-format constants (spec.md §6.3).
const (
	Magic      uint64 = 0x74706461 // "adpt", little-endian
	Endianness uint16 = 0x00EF

	// IterationVersion must match between writer and reader; bumped
	// whenever this module's token id allocation changes.
	IterationVersion uint64 = 1
)

// TokenID mirrors the lexer's tokenid_t (spec.md §6.3).
type TokenID uint16

const (
	TokenWord TokenID = iota
	TokenCString
	TokenString
	TokenGenericInt
	TokenGenericFloat
	tokenKindCount
)

// commonWords is the reserved-shorthand table (spec.md §6.3's
// "TOKEN_PKG_MIN..TOKEN_PKG_MAX" range), alphabetically sorted so
// shorthandIndex can binary search it the way the original's
// binary_string_search does over its compressible_words table.
var commonWords = []string{
	"bool", "byte", "double", "float", "int", "long", "short",
	"ubyte", "uint", "ulong", "ushort", "usize",
}

// TokenPkgMin/TokenPkgMax bound the shorthand range, placed after every
// real token kind so the two ranges never collide.
const TokenPkgMin = TokenID(tokenKindCount)

var TokenPkgMax = TokenPkgMin + TokenID(len(commonWords)) - 1

// Token is one decoded package-file entry. Which payload field is
// populated depends on ID: Word for TokenWord/TokenCString, Bytes for
// TokenString, Int for TokenGenericInt, Float for TokenGenericFloat.
type Token struct {
	ID    TokenID
	Word  string
	Bytes []byte
	Int   int64
	Float float64
}

// Write encodes tokens to w in package-file wire format (spec.md §6.3).
func Write(w io.Writer, tokens []Token) error {
	bw := bufio.NewWriter(w)
	for _, step := range []func() error{
		func() error { return binary.Write(bw, binary.LittleEndian, Magic) },
		func() error { return binary.Write(bw, binary.LittleEndian, Endianness) },
		func() error { return binary.Write(bw, binary.LittleEndian, IterationVersion) },
		func() error { return binary.Write(bw, binary.LittleEndian, uint64(len(tokens))) },
	} {
		if err := step(); err != nil {
			return errors.Wrap(err, "pkgfile: write header")
		}
	}

	for i, t := range tokens {
		if err := writeToken(bw, t); err != nil {
			return errors.Wrapf(err, "pkgfile: write token %d", i)
		}
	}
	return bw.Flush()
}

func writeToken(w io.Writer, t Token) error {
	if t.ID == TokenWord {
		if idx, ok := shorthandIndex(t.Word); ok {
			return binary.Write(w, binary.LittleEndian, uint16(TokenPkgMin)+uint16(idx))
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(t.ID)); err != nil {
		return err
	}

	switch t.ID {
	case TokenWord, TokenCString:
		return writeCString(w, t.Word)
	case TokenString:
		if err := binary.Write(w, binary.LittleEndian, uint64(len(t.Bytes))); err != nil {
			return err
		}
		_, err := w.Write(t.Bytes)
		return err
	case TokenGenericInt:
		return writeCString(w, strconv.FormatInt(t.Int, 10))
	case TokenGenericFloat:
		return writeCString(w, strconv.FormatFloat(t.Float, 'f', 6, 64))
	default:
		return nil
	}
}

func writeCString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

func shorthandIndex(word string) (int, bool) {
	i := sort.SearchStrings(commonWords, word)
	if i < len(commonWords) && commonWords[i] == word {
		return i, true
	}
	return 0, false
}

// Read decodes a package file from r (spec.md §6.3). A mismatched
// magic, endianness, or iteration version is a fatal external error
// (spec.md §7's "External errors — ... package file unreadable").
func Read(r io.Reader) ([]Token, error) {
	br := bufio.NewReader(r)

	var magic uint64
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "pkgfile: read magic")
	}
	if magic != Magic {
		return nil, errors.Errorf("pkgfile: not a package file (magic %#x)", magic)
	}

	var endianness uint16
	if err := binary.Read(br, binary.LittleEndian, &endianness); err != nil {
		return nil, errors.Wrap(err, "pkgfile: read endianness")
	}
	if endianness != Endianness {
		return nil, errors.Errorf("pkgfile: mismatched endianness %#x", endianness)
	}

	var iterVersion uint64
	if err := binary.Read(br, binary.LittleEndian, &iterVersion); err != nil {
		return nil, errors.Wrap(err, "pkgfile: read iteration version")
	}
	if iterVersion != IterationVersion {
		return nil, errors.Errorf("pkgfile: incompatible iteration version %d", iterVersion)
	}

	var length uint64
	if err := binary.Read(br, binary.LittleEndian, &length); err != nil {
		return nil, errors.Wrap(err, "pkgfile: read length")
	}

	tokens := make([]Token, length)
	for i := range tokens {
		tok, err := readToken(br)
		if err != nil {
			return nil, errors.Wrapf(err, "pkgfile: token %d", i)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

func readToken(r *bufio.Reader) (Token, error) {
	var id uint16
	if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
		return Token{}, err
	}
	tid := TokenID(id)

	switch {
	case tid == TokenWord || tid == TokenCString:
		s, err := readCString(r)
		if err != nil {
			return Token{}, err
		}
		return Token{ID: tid, Word: s}, nil

	case tid == TokenString:
		var n uint64
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return Token{}, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Token{}, err
		}
		return Token{ID: tid, Bytes: buf}, nil

	case tid == TokenGenericInt:
		s, err := readCString(r)
		if err != nil {
			return Token{}, err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Token{}, errors.Wrap(err, "malformed generic-int literal")
		}
		return Token{ID: tid, Int: n}, nil

	case tid == TokenGenericFloat:
		s, err := readCString(r)
		if err != nil {
			return Token{}, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Token{}, errors.Wrap(err, "malformed generic-float literal")
		}
		return Token{ID: tid, Float: f}, nil

	case tid >= TokenPkgMin && tid <= TokenPkgMax:
		return Token{ID: TokenWord, Word: commonWords[tid-TokenPkgMin]}, nil

	default:
		return Token{ID: tid}, nil
	}
}

func readCString(r *bufio.Reader) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		return "", err
	}
	return s[:len(s)-1], nil
}

// Opener returns a readable handle for path, letting DecodeAll stay
// independent of any particular filesystem abstraction.
type Opener func(path string) (io.ReadCloser, error)

// DecodeAll decodes every path concurrently via errgroup, returning
// results in the same order as paths. It waits for every decode to
// finish and returns the first failure (spec.md §7: package-file
// unreadable is an external error); a failure does not stop the other
// decodes.
func DecodeAll(ctx context.Context, open Opener, paths []string) ([][]Token, error) {
	results := make([][]Token, len(paths))
	g, _ := errgroup.WithContext(ctx)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			f, err := open(path)
			if err != nil {
				return errors.Wrapf(err, "pkgfile: opening %q", path)
			}
			defer f.Close()

			tokens, err := Read(f)
			if err != nil {
				return errors.Wrapf(err, "pkgfile: decoding %q", path)
			}
			results[i] = tokens
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Dependency is a minimal stand-in for the package/stash dependency
// driver, which spec.md §1 lists as an out-of-scope external
// collaborator: just enough to resolve a version constraint against a
// set of candidate versions using golang.org/x/mod/semver rather than
// hand-rolled string comparison (SPEC_FULL.md §11).
type Dependency struct {
	Name       string
	Constraint string // ">=v1.2.0", "<=v1.2.0", "==v1.2.0", or a bare "v1.2.0" for exact match
}

// Satisfies reports whether version meets d's constraint.
func (d Dependency) Satisfies(version string) bool {
	if !semver.IsValid(version) {
		return false
	}
	c := strings.TrimSpace(d.Constraint)
	switch {
	case strings.HasPrefix(c, ">="):
		return semver.Compare(version, strings.TrimSpace(c[2:])) >= 0
	case strings.HasPrefix(c, "<="):
		return semver.Compare(version, strings.TrimSpace(c[2:])) <= 0
	case strings.HasPrefix(c, "=="):
		return semver.Compare(version, strings.TrimSpace(c[2:])) == 0
	default:
		return semver.Compare(version, c) == 0
	}
}

// Latest returns the highest version in versions satisfying d, or ""
// if none do.
func (d Dependency) Latest(versions []string) string {
	best := ""
	for _, v := range versions {
		if !d.Satisfies(v) {
			continue
		}
		if best == "" || semver.Compare(v, best) > 0 {
			best = v
		}
	}
	return best
}
