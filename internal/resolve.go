package internal

import (
	"path/filepath"
	"strings"
)

// Tag names that carry the artist and album, covering MP4 atoms, Vorbis
// comments, ID3v2 frames and ASF attributes. Earlier entries take priority
// when a file carries more than one of them.
var (
	artistKeys = []string{"©art", "artist", "author", "tpe1"}
	albumKeys  = []string{"©alb", "album", "talb", "wm/albumtitle"}
)

// ArtistAlbum is the sanitized pair a file is filed under.
type ArtistAlbum struct {
	Artist string
	Album  string
}

// ResolveArtistAlbum picks the artist and album out of a tag map. Keys are
// matched case-insensitively. When several keys of the same category are
// present the one listed first in artistKeys/albumKeys wins, and among keys
// differing only in case the lexically first wins.
//
// It fails with *MissingMetadataError when either value is absent or
// sanitizes to an empty string; the error keeps whatever raw values were
// found.
func ResolveArtistAlbum(tags TagMap, stripIllegal bool) (ArtistAlbum, error) {
	artist, artistOK := lookup(tags, artistKeys)
	album, albumOK := lookup(tags, albumKeys)

	res := ArtistAlbum{
		Artist: Sanitize(artist, stripIllegal),
		Album:  Sanitize(album, stripIllegal),
	}
	if res.Artist == "" || res.Album == "" {
		e := &MissingMetadataError{}
		if artistOK {
			e.Artist = &artist
		}
		if albumOK {
			e.Album = &album
		}
		return ArtistAlbum{}, e
	}
	return res, nil
}

// lookup returns the string form of the highest priority key present.
func lookup(tags TagMap, keys []string) (string, bool) {
	best := len(keys)
	var value string
	for _, k := range tags.Keys() {
		lk := strings.ToLower(k)
		for rank, want := range keys {
			if lk == want && rank < best {
				best = rank
				value = tags[k].String()
			}
		}
	}
	return value, best < len(keys)
}

// Destination is where a file lands in the library.
type Destination struct {
	Directory string
	FullPath  string
}

// ResolveDestination lays a file out as {root}/{artist}/{album}/{fileName}.
func ResolveDestination(root string, aa ArtistAlbum, fileName string) Destination {
	dir := filepath.Join(root, aa.Artist, aa.Album)
	return Destination{
		Directory: dir,
		FullPath:  filepath.Join(dir, fileName),
	}
}
