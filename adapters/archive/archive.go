// Package archive iterates over the entries of zip files, jar files included.
package archive

import (
	"archive/zip"

	"github.com/adamluzsi/streams/adapters/lines"
	"github.com/adamluzsi/streams/iterators"
)

// Open opens the archive at path and iterates over its entries in the order of the central directory.
// Closing the iterator closes the archive file.
func Open(path string) iterators.Iterator[*zip.File] {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return iterators.Error[*zip.File](err)
	}
	return iterators.WithCallback(iterators.Slice(rc.File), iterators.OnClose(rc.Close))
}

// Entries iterates over the entries of an already opened archive.
func Entries(r *zip.Reader) iterators.Iterator[*zip.File] {
	return iterators.Slice(r.File)
}

// Lines reads the content of an entry line by line.
// Closing the iterator closes the entry.
func Lines(f *zip.File, opts ...lines.Option) iterators.Iterator[string] {
	rc, err := f.Open()
	if err != nil {
		return iterators.Error[string](err)
	}
	return lines.New[string](rc, opts...)
}
