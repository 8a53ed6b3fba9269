package render

import ferrors "git.home.luguber.info/inful/leli/internal/foundation/errors"

var (
	// ErrConverterNotFound means the converter binary is not on PATH.
	ErrConverterNotFound = ferrors.ExternalToolError("document converter not found").Fatal().Build()
	// ErrConversionFailed means the converter ran and exited non-zero.
	ErrConversionFailed = ferrors.ExternalToolError("document conversion failed").Build()
	// ErrWriteDocument wraps failures writing or rewriting an HTML page.
	ErrWriteDocument = ferrors.FileSystemError("write html document failed").Build()
)
