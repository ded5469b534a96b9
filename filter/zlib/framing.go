// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package zlib

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"code.hybscloud.com/stream"
)

var gzipMagic = [2]byte{0x1f, 0x8b}

// sniffFraming reads the first two bytes of r to tell a gzip member from a
// zlib stream, then pushes them back via Ungetc so the caller's chosen
// reader still sees them from the start.
func sniffFraming(r stream.Stream) (Framing, error) {
	var magic [2]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, err
	}
	if err := r.Ungetc(magic[1]); err != nil {
		return 0, err
	}
	if err := r.Ungetc(magic[0]); err != nil {
		return 0, err
	}
	if magic == gzipMagic {
		return Gzip, nil
	}
	return Zlib, nil
}

func gzipWriter(w io.Writer, level int) (io.WriteCloser, error) {
	return gzip.NewWriterLevel(w, level)
}

func gzipReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func flateWriter(w io.Writer, level int) (io.WriteCloser, error) {
	return flate.NewWriter(w, level)
}

func flateReader(r io.Reader) io.ReadCloser {
	return flate.NewReader(r)
}
