package internal

import (
	"errors"
	"os"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Extractor reads the raw tags of a single audio file.
type Extractor interface {
	Extract(path string) (TagMap, error)
}

// TagReader extracts tags with github.com/dhowden/tag. It handles ID3,
// MP4, FLAC and Ogg containers.
type TagReader struct{}

func (TagReader) Extract(path string) (TagMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil || m == nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}
	return tagsFromMetadata(m), nil
}

func tagsFromMetadata(m tag.Metadata) TagMap {
	raw := m.Raw()
	if raw == nil {
		return TagMap{}
	}
	return newTagMap(raw)
}

// TaglibReader extracts tags with TagLib. It covers the containers
// dhowden/tag cannot parse, such as ASF, APE, WAV and Musepack. Every value
// it returns is a list.
type TaglibReader struct{}

func (TaglibReader) Extract(path string) (TagMap, error) {
	tags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, &UnreadableFileError{Path: path, Err: err}
	}

	raw := make(map[string]any, len(tags))
	for k, v := range tags {
		raw[k] = v
	}
	return newTagMap(raw), nil
}

// ChainExtractor tries each extractor in order and returns the first
// successful result.
type ChainExtractor []Extractor

func (c ChainExtractor) Extract(path string) (TagMap, error) {
	var errs []error
	for _, e := range c {
		tags, err := e.Extract(path)
		if err == nil {
			return tags, nil
		}
		var unreadable *UnreadableFileError
		if errors.As(err, &unreadable) && unreadable.Err != nil {
			err = unreadable.Err
		}
		errs = append(errs, err)
	}
	return nil, &UnreadableFileError{Path: path, Err: errors.Join(errs...)}
}

// DefaultExtractor reads with dhowden/tag first and falls back to TagLib.
func DefaultExtractor() Extractor {
	return ChainExtractor{TagReader{}, TaglibReader{}}
}
