// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sha1_test

import (
	"encoding/hex"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/stream"
	streamsha1 "code.hybscloud.com/stream/filter/sha1"
)

func TestEmptyInputDigest(t *testing.T) {
	inner := stream.NewCString(nil)
	r := streamsha1.NewReader(inner)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", hex.EncodeToString(out))
}

func TestKnownAnswerAbc(t *testing.T) {
	inner := stream.NewCString([]byte("abc"))
	r := streamsha1.NewReader(inner)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hex.EncodeToString(out))
}

func TestWriterEmitsDigestOnClose(t *testing.T) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	w := streamsha1.NewWriter(sink)

	_, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hex.EncodeToString(stream.Bytes(sink)))
}

func TestReadWriteModeReflectsCurrentDigest(t *testing.T) {
	inner := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	rw := streamsha1.NewReadWriter(inner)

	_, err := rw.Write([]byte("a"))
	require.NoError(t, err)
	require.NoError(t, rw.Flush())
	first := make([]byte, 20)
	n, err := io.ReadFull(rw, first)
	require.NoError(t, err)
	require.Equal(t, 20, n)

	require.NoError(t, rw.Flush())
	_, err = rw.Write([]byte("bc"))
	require.NoError(t, err)
	require.NoError(t, rw.Flush())
	second := make([]byte, 20)
	n, err = io.ReadFull(rw, second)
	require.NoError(t, err)
	require.Equal(t, 20, n)

	require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hex.EncodeToString(second))
	require.NotEqual(t, first, second)
}
