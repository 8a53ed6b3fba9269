package protocol

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/leli/internal/testutil/testutils"
)

func TestParse(t *testing.T) {
	name, ok := Parse("aimm")
	require.True(t, ok)
	require.Equal(t, AImM, name)

	_, ok = Parse("XYZ")
	require.False(t, ok)
}

func TestMergeReserved(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFiles(t, root, map[string]string{
		"private/a.txt": "a",
		"public/b.txt":  "b",
	})

	merged, err := MergeReserved(root)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "src")}, merged)

	testutils.NewFileAssertions(t, root).
		AssertFileContent("src/a.txt", "a").
		AssertFileContent("src/b.txt", "b").
		AssertNotExists("private").
		AssertNotExists("public")
}

func TestMergeReserved_NestedAndOverlapping(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFiles(t, root, map[string]string{
		"svc/private/config.py":     "secret = 1\n",
		"svc/private/lib/util.py":   "private\n",
		"svc/public/lib/util.py":    "public\n",
		"svc/src/existing.py":       "keep\n",
		"other/public/index.py":     "idx\n",
		"other/private/x/public/y":  "nested\n",
		"untouched/publication.txt": "p\n",
	})

	merged, err := MergeReserved(root)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "other", "src"), filepath.Join(root, "svc", "src")}, merged)

	testutils.NewFileAssertions(t, root).
		AssertFileContent("svc/src/config.py", "secret = 1\n").
		AssertFileContent("svc/src/lib/util.py", "public\n").
		AssertFileContent("svc/src/existing.py", "keep\n").
		AssertFileContent("other/src/index.py", "idx\n").
		AssertFileContent("other/src/x/public/y", "nested\n").
		AssertNotExists("svc/private").
		AssertNotExists("other/public").
		AssertFileExists("untouched/publication.txt")
}

func TestApply(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFiles(t, root, map[string]string{"public/b.txt": "b"})

	out, err := Apply("", root)
	require.NoError(t, err)
	require.Nil(t, out)

	out, err = Apply("unknown", root)
	require.NoError(t, err)
	require.Nil(t, out)
	testutils.NewFileAssertions(t, root).AssertFileExists("public/b.txt")

	out, err = Apply("AImM", root)
	require.NoError(t, err)
	require.Len(t, out, 1)
	testutils.NewFileAssertions(t, root).AssertFileContent("src/b.txt", "b")
}
