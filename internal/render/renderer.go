package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/inful/leli/internal/logfields"
)

// DocumentRenderer converts one Markdown file into a standalone HTML page.
//
// Contract:
//
//	Available(ctx) -> nil when the renderer can run (e.g. its binary exists).
//	Render(ctx, markdownPath, stylesheet) -> full HTML document text. The
//	  stylesheet is referenced by the page, not inlined.
type DocumentRenderer interface {
	Name() string
	Available(ctx context.Context) error
	Render(ctx context.Context, markdownPath, stylesheet string) ([]byte, error)
}

// DefaultPandocBinary is looked up on PATH when PandocRenderer.Binary is empty.
const DefaultPandocBinary = "pandoc"

// PandocRenderer invokes the pandoc binary.
type PandocRenderer struct {
	Binary string
	// ExtraArgs are appended before the input path.
	ExtraArgs []string
}

func (p *PandocRenderer) binary() string {
	if p.Binary == "" {
		return DefaultPandocBinary
	}
	return p.Binary
}

func (p *PandocRenderer) Name() string { return "pandoc" }

// Available checks that the binary resolves and answers --version.
func (p *PandocRenderer) Available(ctx context.Context) error {
	path, err := exec.LookPath(p.binary())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConverterNotFound, err)
	}
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return fmt.Errorf("%w: %s --version: %w", ErrConverterNotFound, path, err)
	}
	version, _, _ := strings.Cut(string(out), "\n")
	slog.Debug("Document converter available", logfields.Engine(p.Name()), slog.String("version", version))
	return nil
}

// Args returns the converter arguments for one document.
func (p *PandocRenderer) Args(markdownPath, stylesheet string) []string {
	args := []string{"--standalone", "--to=html"}
	if stylesheet != "" {
		args = append(args, "--css", stylesheet)
	}
	args = append(args, p.ExtraArgs...)
	return append(args, markdownPath)
}

func (p *PandocRenderer) Render(ctx context.Context, markdownPath, stylesheet string) ([]byte, error) {
	path, err := exec.LookPath(p.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConverterNotFound, err)
	}

	// #nosec G204 -- binary and arguments come from configuration and the walked tree
	cmd := exec.CommandContext(ctx, path, p.Args(markdownPath, stylesheet)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Debug("Invoking document converter", logfields.Engine(p.Name()), logfields.Path(markdownPath))

	if err := cmd.Run(); err != nil {
		if output := strings.TrimSpace(stderr.String()); output != "" {
			return nil, fmt.Errorf("%w: %w: %s", ErrConversionFailed, err, output)
		}
		return nil, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	if warn := strings.TrimSpace(stderr.String()); warn != "" {
		slog.Debug("Converter stderr", logfields.Path(markdownPath), slog.String("stderr", warn))
	}
	return stdout.Bytes(), nil
}

// StaticRenderer returns canned HTML for every document; useful in tests.
type StaticRenderer struct {
	HTML []byte
	Err  error
	// Unavailable makes Available fail with ErrConverterNotFound.
	Unavailable bool
	Calls       []string
}

func (s *StaticRenderer) Name() string { return "static" }

func (s *StaticRenderer) Available(context.Context) error {
	if s.Unavailable {
		return ErrConverterNotFound
	}
	return nil
}

func (s *StaticRenderer) Render(_ context.Context, markdownPath, _ string) ([]byte, error) {
	s.Calls = append(s.Calls, markdownPath)
	if s.Err != nil {
		return nil, s.Err
	}
	return bytes.Clone(s.HTML), nil
}
