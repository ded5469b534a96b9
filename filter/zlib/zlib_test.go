// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package zlib_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/stream"
	streamzlib "code.hybscloud.com/stream/filter/zlib"
)

func TestZlibRoundTrip(t *testing.T) {
	src := []byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly")

	compressed, err := streamzlib.Deflate(src, streamzlib.Zlib, 6)
	require.NoError(t, err)
	require.NotEmpty(t, compressed)

	out, err := streamzlib.Inflate(compressed, streamzlib.Zlib)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestGzipRoundTrip(t *testing.T) {
	src := []byte("gzip framing round trip")

	compressed, err := streamzlib.Deflate(src, streamzlib.Gzip, 6)
	require.NoError(t, err)

	out, err := streamzlib.Inflate(compressed, streamzlib.Gzip)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestGzipRoundTripOneMebibyteOfZero(t *testing.T) {
	src := make([]byte, 1<<20)

	g := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	w, err := streamzlib.NewDeflateWriter(g, streamzlib.Gzip, 6)
	require.NoError(t, err)
	_, err = w.Write(src)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	compressed := stream.Bytes(g)
	require.Less(t, len(compressed), len(src))

	sink := stream.NewCString(compressed)
	r, err := streamzlib.NewInflateReader(sink, streamzlib.Gzip)
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Len(t, out, len(src))
	require.True(t, bytes.Equal(out, src))
}

func TestAutoFramingDetectsGzip(t *testing.T) {
	src := []byte("auto-detected gzip framing")

	compressed, err := streamzlib.Deflate(src, streamzlib.Gzip, 6)
	require.NoError(t, err)

	r, err := streamzlib.NewInflateReader(stream.NewCString(compressed), streamzlib.Auto)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestAutoFramingDetectsZlib(t *testing.T) {
	src := []byte("auto-detected zlib framing")

	compressed, err := streamzlib.Deflate(src, streamzlib.Zlib, 6)
	require.NoError(t, err)

	r, err := streamzlib.NewInflateReader(stream.NewCString(compressed), streamzlib.Auto)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestAutoFramingRejectedForDeflateWriter(t *testing.T) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeWrite, false)
	_, err := streamzlib.NewDeflateWriter(sink, streamzlib.Auto, 6)
	require.ErrorIs(t, err, stream.ErrInvalidArgument)
}

func TestRawDeflateRoundTrip(t *testing.T) {
	src := []byte("raw deflate framing round trip")

	compressed, err := streamzlib.Deflate(src, streamzlib.Raw, 6)
	require.NoError(t, err)

	out, err := streamzlib.Inflate(compressed, streamzlib.Raw)
	require.NoError(t, err)
	require.Equal(t, src, out)
}
