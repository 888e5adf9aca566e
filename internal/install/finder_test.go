package install

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootFinder_FileRoot(t *testing.T) {
	files := []string{"Archive/", "Archive/Mod/", "Archive/Mod/Cool.pak", "Archive/readme.txt"}

	finder := NewRootFinder().AddFileRoot(".pak", true, true)

	root, ok := finder.GetRoot(files)
	assert.True(t, ok)
	assert.Equal(t, "Archive/Mod", root)
}

func TestRootFinder_FileRootCaseSensitive(t *testing.T) {
	files := []string{"Mod/COOL.PAK", "Mod/x.txt"}

	_, ok := NewRootFinder().AddFileRoot(".pak", false, false).GetRoot(files)
	assert.False(t, ok)

	root, ok := NewRootFinder().AddFileRoot(".pak", true, false).GetRoot(files)
	assert.True(t, ok)
	assert.Equal(t, "Mod/COOL.PAK", root)
}

func TestRootFinder_FileRootIgnoresDirectories(t *testing.T) {
	files := []string{"Paks/", "Other/x.txt"}

	_, ok := NewRootFinder().AddFileRoot("paks", true, false).GetRoot(files)
	assert.False(t, ok)
}

func TestRootFinder_FolderRootUseParent(t *testing.T) {
	files := []string{"Pack/", "Pack/Content/", "Pack/Content/Paks/", "Pack/Content/Paks/a.pak"}

	finder := NewRootFinder().AddFolderRoot("content", true, true)

	root, ok := finder.GetRoot(files)
	assert.True(t, ok)
	assert.Equal(t, "Pack", root)
}

func TestRootFinder_FirstMatchingRuleWins(t *testing.T) {
	files := []string{"A/x.dll", "B/y.pak", "C/z.txt"}

	finder := NewRootFinder().
		AddFileRoot(".esp", true, false).
		AddFileRoot(".pak", true, true).
		AddFileRoot(".dll", true, true)

	root, ok := finder.GetRoot(files)
	assert.True(t, ok)
	assert.Equal(t, "B", root)
}

func TestRootFinder_AttemptsCappedByFileCount(t *testing.T) {
	files := []string{"Mod/a.pak"}

	finder := NewRootFinder().
		AddFileRoot(".esp", true, false).
		AddFileRoot(".pak", true, false)

	_, ok := finder.GetRoot(files)
	assert.False(t, ok, "second rule is past the file-count bound")

	root, ok := finder.Strict().GetRoot(files)
	assert.True(t, ok)
	assert.Equal(t, "Mod/a.pak", root)
}

func TestRootFinder_EmptyInputs(t *testing.T) {
	_, ok := NewRootFinder().GetRoot([]string{"a.pak"})
	assert.False(t, ok)

	_, ok = NewRootFinder().AddFileRoot(".pak", true, false).GetRoot(nil)
	assert.False(t, ok)

	assert.Empty(t, NewRootFinder().GetRoots([]string{"a.pak"}))
}

func TestRootFinder_Search(t *testing.T) {
	files := []string{"x/a.txt", "y/b.lua"}

	finder := NewRootFinder().AddSearch(func(p string) bool { return strings.HasSuffix(p, ".lua") })

	root, ok := finder.GetRoot(files)
	assert.True(t, ok)
	assert.Equal(t, "y/b.lua", root)
	assert.Equal(t, 1, finder.Len())
}

func TestRootFinder_GetRoots(t *testing.T) {
	files := []string{"A/one.pak", "B/two.pak", "C/three.lua"}

	finder := NewRootFinder().
		AddFileRoot(".pak", true, true).
		AddFileRoot(".lua", true, false)

	assert.Equal(t, []string{"A", "B", "C/three.lua"}, finder.GetRoots(files))
}
