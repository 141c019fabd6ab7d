package prefix

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func makeSystem32(t *testing.T, root string, appID string) string {
	t.Helper()
	dir := filepath.Join(root, "compatdata", appID, "pfx", "drive_c", "windows", "system32")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func testLayout(roots ...string) Layout {
	return Layout{
		Roots:         roots,
		System32Globs: []string{"compatdata/*/pfx/drive_c/windows/system32/"},
		LibraryName:   LibraryName,
	}
}

func TestDefaultLayout(t *testing.T) {
	layout := DefaultLayout()
	require.Equal(t, []string{
		"~/.steam/debian-installation/steamapps",
		"~/.local/share/Steam/steamapps",
	}, layout.Roots)
	require.Equal(t, []string{"compatdata/*/pfx/drive_c/windows/system32/"}, layout.System32Globs)
	require.Equal(t, "ucrtbase.dll", layout.LibraryName)
}

func TestExpandRoots_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.Reset()
	t.Cleanup(homedir.Reset)

	roots, err := ExpandRoots(Layout{Roots: []string{"~/.local/share/Steam/steamapps", "/abs/steamapps"}})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(home, ".local/share/Steam/steamapps"), "/abs/steamapps"}, roots)
}

func TestExpandRoots_Error(t *testing.T) {
	orig := expandHome
	expandHome = func(string) (string, error) { return "", errors.New("no home") }
	t.Cleanup(func() { expandHome = orig })

	_, err := ExpandRoots(Layout{Roots: []string{"~/steamapps"}})
	require.ErrorContains(t, err, "expand steam root ~/steamapps: no home")
}

func TestFindSystem32Dirs_NoMatches(t *testing.T) {
	empty := t.TempDir()
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	dirs, err := FindSystem32Dirs(testLayout(empty, missing))
	require.NoError(t, err)
	require.Empty(t, dirs)
}

func TestFindSystem32Dirs_MultipleRoots(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	a1 := makeSystem32(t, rootA, "42")
	a2 := makeSystem32(t, rootA, "813780")
	b1 := makeSystem32(t, rootB, "7")

	dirs, err := FindSystem32Dirs(testLayout(rootA, rootB))
	require.NoError(t, err)
	require.Equal(t, []string{a1, a2, b1}, dirs)
}

func TestFindSystem32Dirs_SkipsFiles(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Join(root, "compatdata", "42", "pfx", "drive_c", "windows")
	require.NoError(t, os.MkdirAll(parent, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "system32"), []byte("not a dir"), 0o644))

	dirs, err := FindSystem32Dirs(testLayout(root))
	require.NoError(t, err)
	require.Empty(t, dirs)
}

func TestFindSystem32Dirs_DeduplicatesSymlinkedRoots(t *testing.T) {
	base := t.TempDir()
	realRoot := filepath.Join(base, "real")
	dir := makeSystem32(t, realRoot, "42")
	alias := filepath.Join(base, "alias")
	require.NoError(t, os.Symlink(realRoot, alias))

	dirs, err := FindSystem32Dirs(testLayout(realRoot, alias))
	require.NoError(t, err)
	require.Equal(t, []string{dir}, dirs)
}

func TestFindSystem32Dirs_RootWithGlobMetacharacters(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "Steam [old]")
	dir := makeSystem32(t, root, "42")
	// A sibling that "[old]" would match as a character class must not be picked up.
	makeSystem32(t, filepath.Join(base, "Steam o"), "43")

	dirs, err := FindSystem32Dirs(testLayout(root))
	require.NoError(t, err)
	require.Equal(t, []string{dir}, dirs)
}

func TestFindSystem32Dirs_GlobError(t *testing.T) {
	orig := globFunc
	globFunc = func(string) ([]string, error) { return nil, filepath.ErrBadPattern }
	t.Cleanup(func() { globFunc = orig })

	_, err := FindSystem32Dirs(testLayout(t.TempDir()))
	require.ErrorIs(t, err, filepath.ErrBadPattern)
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()

	regular := filepath.Join(dir, "regular.dll")
	require.NoError(t, os.WriteFile(regular, []byte("MZ"), 0o644))

	target := filepath.Join(dir, "target.dll")
	require.NoError(t, os.WriteFile(target, []byte("MZ"), 0o644))
	validLink := filepath.Join(dir, "valid-link.dll")
	require.NoError(t, os.Symlink(target, validLink))

	danglingLink := filepath.Join(dir, "dangling-link.dll")
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere.dll"), danglingLink))

	tests := []struct {
		name string
		path string
		want State
	}{
		{name: "regular file", path: regular, want: StatePresent},
		{name: "missing", path: filepath.Join(dir, "missing.dll"), want: StateMissing},
		{name: "valid symlink", path: validLink, want: StateStaleLink},
		{name: "dangling symlink", path: danglingLink, want: StateStaleLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.path)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_LstatError(t *testing.T) {
	orig := osLstat
	osLstat = func(string) (os.FileInfo, error) { return nil, fs.ErrPermission }
	t.Cleanup(func() { osLstat = orig })

	_, err := Classify("/prefix/ucrtbase.dll")
	require.ErrorIs(t, err, fs.ErrPermission)
	require.ErrorContains(t, err, "inspect /prefix/ucrtbase.dll")
}

func TestScan_ClassifiesEveryPrefix(t *testing.T) {
	root := t.TempDir()
	presentDir := makeSystem32(t, root, "1")
	missingDir := makeSystem32(t, root, "2")
	linkDir := makeSystem32(t, root, "42")

	require.NoError(t, os.WriteFile(filepath.Join(presentDir, LibraryName), []byte("real"), 0o644))
	require.NoError(t, os.Symlink("/usr/lib/wine/ucrtbase.dll", filepath.Join(linkDir, LibraryName)))

	entries, err := Scan(testLayout(root))
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{System32Dir: presentDir, Path: filepath.Join(presentDir, LibraryName), State: StatePresent},
		{System32Dir: missingDir, Path: filepath.Join(missingDir, LibraryName), State: StateMissing},
		{System32Dir: linkDir, Path: filepath.Join(linkDir, LibraryName), State: StateStaleLink},
	}, entries)

	needs := NeedsInstall(entries)
	require.Len(t, needs, 2)
	for _, e := range needs {
		require.NotEqual(t, StatePresent, e.State)
	}
	require.Equal(t, []Entry{entries[0]}, Present(entries))
}

func TestScan_RequiresLibraryName(t *testing.T) {
	_, err := Scan(Layout{Roots: []string{t.TempDir()}})
	require.ErrorContains(t, err, "library name is required")
}

func TestScanner_UsesLayout(t *testing.T) {
	root := t.TempDir()
	dir := makeSystem32(t, root, "42")

	entries, err := Scanner{Layout: testLayout(root)}.Scan()
	require.NoError(t, err)
	require.Equal(t, []Entry{{System32Dir: dir, Path: filepath.Join(dir, LibraryName), State: StateMissing}}, entries)
}

func TestEntryNeedsInstall(t *testing.T) {
	require.False(t, Entry{State: StatePresent}.NeedsInstall())
	require.True(t, Entry{State: StateMissing}.NeedsInstall())
	require.True(t, Entry{State: StateStaleLink}.NeedsInstall())
}
