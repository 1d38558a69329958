package models

import (
	"bufio"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
)

// LoadCar reads the plain text model format:
//
//	VertexCount: 3
//	TriangleCount: 1
//	VertexList (pos, normal)
//	{
//		x y z nx ny nz
//		...
//	}
//	TriangleList
//	{
//		i0 i1 i2
//		...
//	}
//
// Texture coordinates are generated by projecting positions onto a sphere.
func LoadCar(name string, r io.Reader) (*Model, error) {
	s := &tokenScanner{scanner: bufio.NewScanner(r)}
	s.scanner.Split(bufio.ScanWords)

	vcount := s.labelledInt("VertexCount:")
	tcount := s.labelledInt("TriangleCount:")
	s.expect("VertexList")
	s.skipUntil("{")

	model := &Model{
		Name:     name,
		Vertices: make([]Vertex, 0, max(vcount, 0)),
		Indices:  make([]uint32, 0, 3*max(tcount, 0)),
	}
	for i := 0; i < vcount && s.err == nil; i++ {
		var v Vertex
		for c := 0; c < 3; c++ {
			v.Position[c] = s.float()
		}
		for c := 0; c < 3; c++ {
			v.Normal[c] = s.float()
		}
		v.TexC = sphericalTexC(v.Position)
		model.Vertices = append(model.Vertices, v)
	}

	s.expect("}")
	s.expect("TriangleList")
	s.expect("{")
	for i := 0; i < 3*tcount && s.err == nil; i++ {
		model.Indices = append(model.Indices, s.index())
	}
	s.expect("}")

	if s.err != nil {
		return nil, errors.Wrapf(s.err, "loading model %q", name)
	}
	return model, nil
}

// tokenScanner keeps the first error it runs into; later reads become no-ops.
type tokenScanner struct {
	scanner *bufio.Scanner
	token   int
	err     error
}

func (s *tokenScanner) next() string {
	if s.err != nil {
		return ""
	}
	if !s.scanner.Scan() {
		s.err = s.scanner.Err()
		if s.err == nil {
			s.err = errors.Newf("unexpected end of input after token %d", s.token)
		}
		return ""
	}
	s.token++
	return s.scanner.Text()
}

func (s *tokenScanner) expect(want string) {
	if got := s.next(); s.err == nil && got != want {
		s.err = errors.Newf("token %d: expected %q, got %q", s.token, want, got)
	}
}

func (s *tokenScanner) skipUntil(want string) {
	for s.err == nil {
		if s.next() == want {
			return
		}
	}
}

func (s *tokenScanner) labelledInt(label string) int {
	s.expect(label)
	text := s.next()
	if s.err != nil {
		return 0
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		s.err = errors.Newf("token %d: invalid %s %q", s.token, label, text)
		return 0
	}
	return n
}

func (s *tokenScanner) float() float32 {
	text := s.next()
	if s.err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		s.err = errors.Wrapf(err, "token %d", s.token)
		return 0
	}
	return float32(f)
}

func (s *tokenScanner) index() uint32 {
	text := s.next()
	if s.err != nil {
		return 0
	}
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		s.err = errors.Wrapf(err, "token %d", s.token)
		return 0
	}
	return uint32(n)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
