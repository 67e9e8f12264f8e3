package diag

import "strings"

// FileResolver is the default SourceResolver: it holds each object's
// full source buffer and performs a linear byte_index -> (line, column)
// scan per call, matching the original implementation's behavior of
// re-scanning per diagnostic rather than maintaining a line-offset
// index (SPEC_FULL.md §12 — this is only ever on the error path, so the
// O(n) scan cost is immaterial).
type FileResolver struct {
	Buffers map[int]string // object id -> full source text
	Names   map[int]string // object id -> filename, for diagnostics
}

// NewFileResolver returns an empty resolver; call AddObject per source
// file as it is read.
func NewFileResolver() *FileResolver {
	return &FileResolver{Buffers: map[int]string{}, Names: map[int]string{}}
}

// AddObject registers object id's filename and buffer.
func (r *FileResolver) AddObject(id int, filename, buffer string) {
	r.Names[id] = filename
	r.Buffers[id] = buffer
}

func (r *FileResolver) Resolve(object, byteIndex int) (line, column int) {
	buf, ok := r.Buffers[object]
	if !ok {
		return 0, 0
	}
	if byteIndex > len(buf) {
		byteIndex = len(buf)
	}
	line = 1
	lastNewline := -1
	for i := 0; i < byteIndex; i++ {
		if buf[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	column = byteIndex - lastNewline
	return line, column
}

func (r *FileResolver) SourceLine(object, byteIndex int) string {
	buf, ok := r.Buffers[object]
	if !ok {
		return ""
	}
	start := strings.LastIndexByte(buf[:min(byteIndex, len(buf))], '\n') + 1
	end := strings.IndexByte(buf[start:], '\n')
	if end == -1 {
		return buf[start:]
	}
	return buf[start : start+end]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
