// Package protocol implements the post-extraction layout conventions that
// can be selected with --protocol.
package protocol

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/leli/internal/foundation/normalization"
	"git.home.luguber.info/inful/leli/internal/fsutil"
	"git.home.luguber.info/inful/leli/internal/logfields"
	"git.home.luguber.info/inful/leli/internal/util/sets"
)

// Name identifies a protocol.
type Name string

const (
	// None applies no post-processing.
	None Name = ""
	// AImM merges `private` and `public` directories into a sibling `src`.
	AImM Name = "AImM"
)

var names = normalization.NewEnumNormalizer("protocol", map[string]Name{
	string(AImM): AImM,
}, None)

// Parse resolves a protocol name case-insensitively. Unknown names return
// ok false.
func Parse(raw string) (Name, bool) {
	return names.Lookup(raw)
}

// Reserved directory names merged by AImM, in merge order.
var Reserved = []string{"private", "public"}

// MergedDir is the directory the reserved directories are merged into.
const MergedDir = "src"

// Apply runs the protocol named raw on root. An empty name does nothing; an
// unknown name is logged and ignored. It returns the directories produced.
func Apply(raw, root string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	name, ok := Parse(raw)
	if !ok {
		slog.Warn("Protocol not recognized, skipping", logfields.Protocol(raw))
		return nil, nil
	}
	switch name {
	case AImM:
		return MergeReserved(root)
	default:
		return nil, nil
	}
}

// MergeReserved finds every directory named private or public below root
// and, per distinct parent, copies private then public into <parent>/src
// before removing both. Files present in both are taken from public.
func MergeReserved(root string) ([]string, error) {
	reserved := sets.New(Reserved...)
	parents := sets.New[string]()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != root && reserved.Has(d.Name()) {
			parents.Add(filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var merged []string
	for _, parent := range sets.Sorted(parents) {
		if _, err := os.Stat(parent); os.IsNotExist(err) {
			// Removed together with an enclosing reserved directory.
			continue
		}
		dst := filepath.Join(parent, MergedDir)
		for _, name := range Reserved {
			dir := filepath.Join(parent, name)
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				continue
			}
			if err := fsutil.CopyDir(dir, dst); err != nil {
				return merged, fmt.Errorf("merge %s into %s: %w", dir, dst, err)
			}
			if err := os.RemoveAll(dir); err != nil {
				return merged, fmt.Errorf("remove %s: %w", dir, err)
			}
		}
		slog.Info("Merged reserved directories", logfields.Path(parent), logfields.Output(dst))
		merged = append(merged, dst)
	}
	return merged, nil
}
