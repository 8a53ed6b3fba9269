// Package outcome records what happened to each input file of a run.
package outcome

import (
	"errors"
	"fmt"
)

// Kind classifies the result of processing one input file.
type Kind string

const (
	KindExtracted Kind = "extracted" // source files were written
	KindCopied    Kind = "copied"    // the file was copied through unchanged
	KindRendered  Kind = "rendered"  // an HTML document was produced
	KindSkipped   Kind = "skipped"   // nothing to do (e.g. unchanged fingerprint)
	KindFailed    Kind = "failed"
)

// Outcome is the per-file result of a walk.
type Outcome struct {
	Path    string
	Kind    Kind
	Outputs []string
	Err     error
}

// Report is the ordered list of outcomes of one operation.
type Report struct {
	Outcomes []Outcome
}

// Add appends o to the report.
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Merge appends every outcome of other.
func (r *Report) Merge(other Report) {
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

// Count returns how many outcomes have kind k.
func (r Report) Count(k Kind) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes in order.
func (r Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Kind == KindFailed {
			out = append(out, o)
		}
	}
	return out
}

// Outputs returns every output path produced, in walk order.
func (r Report) Outputs() []string {
	var out []string
	for _, o := range r.Outcomes {
		out = append(out, o.Outputs...)
	}
	return out
}

// Err joins the errors of all failed outcomes, or returns nil.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", o.Path, o.Err))
	}
	return errors.Join(errs...)
}

// Summary renders counts for the CLI, e.g. "3 extracted, 1 copied, 0 failed".
func (r Report) Summary() string {
	s := ""
	for _, k := range []Kind{KindExtracted, KindCopied, KindRendered, KindSkipped} {
		if n := r.Count(k); n > 0 {
			s += fmt.Sprintf("%d %s, ", n, k)
		}
	}
	return s + fmt.Sprintf("%d failed", r.Count(KindFailed))
}
