// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pkcs7_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/stream"
	"code.hybscloud.com/stream/filter/pkcs7"
)

func TestEncodeExactMultipleAppendsFullBlock(t *testing.T) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc := pkcs7.NewEncoder(sink, 16)

	_, err := enc.Write(make([]byte, 16))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	out := stream.Bytes(sink)
	require.Len(t, out, 32)
	for _, b := range out[16:] {
		require.Equal(t, byte(16), b)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc := pkcs7.NewEncoder(sink, 16)

	plain := []byte("Hello, world!")
	_, err := enc.Write(plain)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	padded := stream.NewCString(stream.Bytes(sink))
	dec := pkcs7.NewDecoder(padded, 16)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestEncodeDecodeRoundTripMultiBlock(t *testing.T) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc := pkcs7.NewEncoder(sink, 16)

	plain := []byte("the quick brown fox jumps over the lazy dog") // 43 bytes, spans 3 blocks once padded
	_, err := enc.Write(plain)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	padded := stream.Bytes(sink)
	require.Len(t, padded, 48)

	dec := pkcs7.NewDecoder(stream.NewCString(padded), 16)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestDecodeExactMultipleOfBlockSizeStripsFullPadBlock(t *testing.T) {
	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc := pkcs7.NewEncoder(sink, 16)

	_, err := enc.Write(make([]byte, 32))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	dec := pkcs7.NewDecoder(stream.NewCString(stream.Bytes(sink)), 16)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 32), out)
}

func TestDecodeBadPadding(t *testing.T) {
	bad := make([]byte, 16)
	bad[15] = 3 // claims 3 pad bytes but none match
	src := stream.NewCString(bad)
	dec := pkcs7.NewDecoder(src, 16)

	_, err := io.ReadAll(dec)
	require.ErrorIs(t, err, stream.ErrBadMessage)
}
