package literate

import (
	"bufio"
	"fmt"
	"io"
	"os"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/frontmatter"
)

// maxLineSize bounds a single Markdown line.
const maxLineSize = 4 * 1024 * 1024

// Blocks maps each recognized language to the concatenation of its code
// block bodies, one trailing newline per line.
type Blocks map[Language]string

// Document is the raw result of scanning a literate Markdown file.
type Document struct {
	FrontMatter    string
	HasFrontMatter bool
	Terminated     bool
	Blocks         Blocks
}

// Extraction is a decoded document together with its output files.
type Extraction struct {
	Metadata frontmatter.Metadata
	Blocks   Blocks
	Blobs    []Blob
}

// Scan runs the Scanner over every line of r.
func Scan(r io.Reader) (Document, error) {
	s := NewScanner()
	lines := bufio.NewScanner(r)
	lines.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lines.Scan() {
		s.Feed(lines.Text())
	}
	if err := lines.Err(); err != nil {
		return Document{}, fmt.Errorf("scan document: %w", err)
	}
	return s.Result(), nil
}

// Decode validates the front matter of doc and assembles its output blobs.
func Decode(doc Document) (*Extraction, error) {
	if !doc.HasFrontMatter {
		return nil, ErrFrontMatterNotFound
	}
	if !doc.Terminated {
		return nil, ErrFrontMatterUnterminated
	}
	meta, err := frontmatter.Decode([]byte(doc.FrontMatter))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDecode, ErrMetadataDecode.Message()).Build()
	}
	return &Extraction{
		Metadata: meta,
		Blocks:   doc.Blocks,
		Blobs:    Assemble(meta, doc.Blocks),
	}, nil
}

// ExtractSource scans and decodes an in-memory document.
func ExtractSource(r io.Reader) (*Extraction, error) {
	doc, err := Scan(r)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

// ExtractFile scans and decodes the Markdown file at path.
func ExtractFile(path string) (*Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "open document").
			WithContext("path", path).
			Build()
	}
	defer func() { _ = f.Close() }()

	ext, err := ExtractSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ext, nil
}
