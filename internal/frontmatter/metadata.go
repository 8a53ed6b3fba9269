package frontmatter

import (
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Metadata is the decoded front matter of a literate document.
type Metadata struct {
	// OutputFilename is the base name, without extension, of the extracted
	// source files. It may contain sub directories relative to the output
	// directory.
	OutputFilename string `yaml:"output_filename"`
}

// Decode parses raw front matter (without delimiters) into Metadata and
// validates it. Unknown keys are ignored.
func Decode(raw []byte) (Metadata, error) {
	var m Metadata
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Metadata{}, fmt.Errorf("parse yaml: %w", err)
	}
	m.OutputFilename = strings.TrimSpace(m.OutputFilename)
	if err := m.Validate(); err != nil {
		return Metadata{}, err
	}
	return m, nil
}

// Validate checks that output_filename is present and stays inside the
// output directory.
func (m Metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.OutputFilename, validation.Required, validation.By(func(value any) error {
			name, _ := value.(string)
			if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
				return validation.NewError("leli.metadata.output_filename_absolute", "must be a relative path")
			}
			clean := filepath.ToSlash(filepath.Clean(name))
			if clean == ".." || strings.HasPrefix(clean, "../") {
				return validation.NewError("leli.metadata.output_filename_escape", "must not leave the output directory")
			}
			return nil
		})),
	)
}
