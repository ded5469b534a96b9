// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripSmallMessages(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	n, err = w.Write([]byte("world!"))
	require.NoError(t, err)
	require.Equal(t, 6, n)

	r := NewReader(&buf)
	out := make([]byte, 64)
	n, err = r.Read(out)
	require.NoError(t, err)
	require.Equal(t, "hello", string(out[:n]))

	n, err = r.Read(out)
	require.NoError(t, err)
	require.Equal(t, "world!", string(out[:n]))
}

func TestRoundTripExtendedLength(t *testing.T) {
	var buf bytes.Buffer
	payload := strings.Repeat("x", 10_000)
	w := NewWriter(&buf)
	_, err := w.Write([]byte(payload))
	require.NoError(t, err)

	r := NewReader(&buf)
	out := make([]byte, len(payload))
	n, err := r.Read(out)
	require.NoError(t, err)
	require.Equal(t, payload, string(out[:n]))
}

func TestWireFormatShortHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write([]byte("ab"))
	require.NoError(t, err)
	require.Equal(t, byte(2), buf.Bytes()[0])
	require.Equal(t, "ab", string(buf.Bytes()[1:]))
}

func TestWireFormatExtendedHeaderByteOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithWriteByteOrder(binary.LittleEndian))
	payload := strings.Repeat("y", 300)
	_, err := w.Write([]byte(payload))
	require.NoError(t, err)
	require.Equal(t, byte(0xFE), buf.Bytes()[0])
	gotLen := binary.LittleEndian.Uint16(buf.Bytes()[1:3])
	require.Equal(t, uint16(300), gotLen)
}

func TestDatagramProtocolPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithProtocol(Datagram))
	_, err := w.Write([]byte("raw"))
	require.NoError(t, err)
	require.Equal(t, "raw", buf.String())

	r := NewReader(&buf, WithProtocol(Datagram))
	out := make([]byte, 16)
	n, err := r.Read(out)
	require.NoError(t, err)
	require.Equal(t, "raw", string(out[:n]))
}

func TestReaderWriteToCopiesOneMessageAtATime(t *testing.T) {
	var src bytes.Buffer
	w := NewWriter(&src)
	_, err := w.Write([]byte("first"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second"))
	require.NoError(t, err)

	r := &Reader{fr: newFramer(&src, nil)}
	var dst bytes.Buffer
	total, err := r.WriteTo(&dst)
	require.NoError(t, err)
	require.Equal(t, int64(len("first")+len("second")), total)
	require.Equal(t, "firstsecond", dst.String())
}

func TestWriterReadFromEncodesEachChunkAsOneMessage(t *testing.T) {
	var dst bytes.Buffer
	w := &Writer{fr: newFramer(nil, &dst)}
	src := strings.NewReader("chunked")
	total, err := w.ReadFrom(src)
	require.NoError(t, err)
	require.Equal(t, int64(len("chunked")), total)

	r := NewReader(&dst)
	out := make([]byte, 32)
	n, rerr := r.Read(out)
	require.NoError(t, rerr)
	require.Equal(t, "chunked", string(out[:n]))
}

func TestReadLimitRejectsOversizedMessage(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.Write([]byte(strings.Repeat("z", 100)))
	require.NoError(t, err)

	r := NewReader(&buf, WithReadLimit(10))
	out := make([]byte, 200)
	_, err = r.Read(out)
	require.ErrorIs(t, err, ErrTooLong)
}

func TestPipeRoundTrip(t *testing.T) {
	reader, writer := NewPipe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := writer.Write([]byte("ping"))
		require.NoError(t, err)
	}()
	out := make([]byte, 16)
	n, err := reader.Read(out)
	require.NoError(t, err)
	require.Equal(t, "ping", string(out[:n]))
	<-done
}

func TestReaderEOFOnEmptyUnderlying(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	out := make([]byte, 16)
	_, err := r.Read(out)
	require.ErrorIs(t, err, io.EOF)
}
