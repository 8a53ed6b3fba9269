package literate

import (
	"os"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"
	"git.home.luguber.info/inful/leli/internal/frontmatter"
)

// Blob is one output source file.
type Blob struct {
	Name     string
	Language Language
	Content  []byte
}

// Assemble produces one blob per recognized language present in blocks,
// named <output_filename>.<ext>, in language table order. Languages without
// a known extension are skipped.
func Assemble(meta frontmatter.Metadata, blocks Blocks) []Blob {
	var blobs []Blob
	for _, lang := range Languages() {
		content, ok := blocks[lang]
		if !ok {
			continue
		}
		ext, ok := lang.Extension()
		if !ok {
			continue
		}
		blobs = append(blobs, Blob{
			Name:     meta.OutputFilename + "." + ext,
			Language: lang,
			Content:  []byte(content),
		})
	}
	return blobs
}

// WriteBlobs writes blobs below dir, creating intermediate directories and
// overwriting existing files. It returns the written paths.
func WriteBlobs(dir string, blobs []Blob) ([]string, error) {
	written := make([]string, 0, len(blobs))
	for _, b := range blobs {
		target := filepath.Join(dir, filepath.FromSlash(b.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return written, ferrors.WrapError(err, ferrors.CategoryFileSystem, ErrWriteOutput.Message()).
				WithContext("path", target).
				Build()
		}
		if err := os.WriteFile(target, b.Content, 0o644); err != nil {
			return written, ferrors.WrapError(err, ferrors.CategoryFileSystem, ErrWriteOutput.Message()).
				WithContext("path", target).
				Build()
		}
		written = append(written, target)
	}
	return written, nil
}
