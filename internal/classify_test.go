package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
)

func TestClassify(t *testing.T) {
	root := t.TempDir()
	dest := ResolveDestination(root, ArtistAlbum{"Radiohead", "Kid A"}, "01.flac")

	class, err := Classify(dest)
	must.NoError(t, err)
	must.Eq(t, Ready, class)

	must.NoError(t, os.MkdirAll(dest.Directory, 0755))
	must.NoError(t, os.WriteFile(dest.FullPath, []byte("existing"), 0644))

	class, err = Classify(dest)
	must.NoError(t, err)
	must.Eq(t, Conflict, class)
	must.Eq(t, "conflict", class.String())
}

func TestClassify_NotCached(t *testing.T) {
	root := t.TempDir()
	dest := ResolveDestination(root, ArtistAlbum{"Air", "Moon Safari"}, "03.mp3")
	must.NoError(t, os.MkdirAll(dest.Directory, 0755))
	must.NoError(t, os.WriteFile(dest.FullPath, []byte("existing"), 0644))

	class, err := Classify(dest)
	must.NoError(t, err)
	must.Eq(t, Conflict, class)

	must.NoError(t, os.Remove(dest.FullPath))

	class, err = Classify(dest)
	must.NoError(t, err)
	must.Eq(t, Ready, class)
}

func TestClassify_DanglingSymlinkIsConflict(t *testing.T) {
	root := t.TempDir()
	dest := ResolveDestination(root, ArtistAlbum{"Air", "Talkie Walkie"}, "01.mp3")
	must.NoError(t, os.MkdirAll(dest.Directory, 0755))
	must.NoError(t, os.Symlink(filepath.Join(root, "missing"), dest.FullPath))

	class, err := Classify(dest)
	must.NoError(t, err)
	must.Eq(t, Conflict, class)
}
