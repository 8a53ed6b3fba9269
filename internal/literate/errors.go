package literate

import ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"

var (
	// ErrFrontMatterNotFound is returned for documents without a `---` block.
	ErrFrontMatterNotFound = ferrors.NotFoundError("no front matter block").Build()
	// ErrFrontMatterUnterminated is returned when the closing `---` is missing.
	ErrFrontMatterUnterminated = ferrors.NotFoundError("front matter block is not terminated").Build()
	// ErrMetadataDecode wraps YAML and validation failures of the front matter.
	ErrMetadataDecode = ferrors.DecodeError("front matter decode failed").Build()
	// ErrWriteOutput wraps failures writing extracted files.
	ErrWriteOutput = ferrors.FileSystemError("write extracted source failed").Build()
)
