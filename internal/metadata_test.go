package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
)

// The files under testdata carry real tags written by lltag: artist
// "Test Artist", album "Test Album".
func TestDefaultExtractor_TaggedFiles(t *testing.T) {
	cases := []struct {
		file string
		key  string
	}{
		{"id3v24.mp3", "tpe1"},
		{"atoms.m4a", "©art"},
		{"vorbis.flac", "artist"},
		{"vorbis.ogg", "artist"},
	}

	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			tags, err := DefaultExtractor().Extract(filepath.Join("testdata", tc.file))
			must.NoError(t, err)
			must.MapContainsKey(t, tags, tc.key)

			aa, err := ResolveArtistAlbum(tags, true)
			must.NoError(t, err)
			must.Eq(t, ArtistAlbum{Artist: "Test Artist", Album: "Test Album"}, aa)
		})
	}
}

func TestTagReader_Unreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.mp3")
	must.NoError(t, os.WriteFile(path, []byte("not an audio file at all"), 0644))

	_, err := TagReader{}.Extract(path)
	var unreadable *UnreadableFileError
	must.ErrorAs(t, err, &unreadable)
	must.Eq(t, path, unreadable.Path)

	_, err = TagReader{}.Extract(filepath.Join(t.TempDir(), "missing.mp3"))
	must.ErrorAs(t, err, &unreadable)
}

func TestPipeline_Run_TaggedFiles(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	for _, name := range []string{"id3v24.mp3", "atoms.m4a", "vorbis.flac"} {
		b, err := os.ReadFile(filepath.Join("testdata", name))
		must.NoError(t, err)
		must.NoError(t, os.WriteFile(filepath.Join(src, name), b, 0644))
	}

	batch, err := NewPipeline(newTestLogger(t)).Run(t.Context(), Request{Source: src, Destination: dst, StripIllegal: true})
	must.NoError(t, err)
	must.Eq(t, 3, batch.Count(Organized))
	must.FileExists(t, filepath.Join(dst, "Test Artist", "Test Album", "atoms.m4a"))
}
