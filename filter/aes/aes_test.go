// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package aes_test

import (
	"encoding/hex"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/stream"
	streamaes "code.hybscloud.com/stream/filter/aes"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// FIPS-800-38A F.2.1 CBC-AES128 first block test vector.
func TestCBCEncryptKnownAnswer(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")
	wantCipher := mustHex(t, "7649abac8119b246cee98e9b12e9197d")

	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc, err := streamaes.NewEncrypter(sink, key, iv, streamaes.CBC)
	require.NoError(t, err)

	_, err = enc.Write(plain)
	require.NoError(t, err)
	require.Equal(t, wantCipher, stream.Bytes(sink))
}

func TestCBCDecryptKnownAnswer(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	cipherText := mustHex(t, "7649abac8119b246cee98e9b12e9197d")
	wantPlain := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")

	src := stream.NewCString(cipherText)
	dec, err := streamaes.NewDecrypter(src, key, iv, streamaes.CBC)
	require.NoError(t, err)

	out := make([]byte, 16)
	n, err := io.ReadFull(dec, out)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, wantPlain, out)
}

// NIST SP800-38A F.1.1 ECB-AES128 first block test vector.
func TestECBEncryptKnownAnswer(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	plain := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")
	wantCipher := mustHex(t, "3ad77bb40d7a3660a89ecaf32466ef97")

	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc, err := streamaes.NewEncrypter(sink, key, nil, streamaes.ECB)
	require.NoError(t, err)

	_, err = enc.Write(plain)
	require.NoError(t, err)
	require.Equal(t, wantCipher, stream.Bytes(sink))
}

func TestECBDecryptKnownAnswer(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	cipherText := mustHex(t, "3ad77bb40d7a3660a89ecaf32466ef97")
	wantPlain := mustHex(t, "6bc1bee22e409f96e93d7e117393172a")

	src := stream.NewCString(cipherText)
	dec, err := streamaes.NewDecrypter(src, key, nil, streamaes.ECB)
	require.NoError(t, err)

	out := make([]byte, 16)
	n, err := io.ReadFull(dec, out)
	require.NoError(t, err)
	require.Equal(t, 16, n)
	require.Equal(t, wantPlain, out)
}

func TestECBRoundTrip(t *testing.T) {
	key := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := make([]byte, 32)
	for i := range plain {
		plain[i] = byte(i)
	}

	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc, err := streamaes.NewEncrypter(sink, key, nil, streamaes.ECB)
	require.NoError(t, err)
	_, err = enc.Write(plain)
	require.NoError(t, err)

	src := stream.NewCString(stream.Bytes(sink))
	dec, err := streamaes.NewDecrypter(src, key, nil, streamaes.ECB)
	require.NoError(t, err)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestCFBRoundTrip(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := mustHex(t, "6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51")

	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc, err := streamaes.NewEncrypter(sink, key, iv, streamaes.CFB)
	require.NoError(t, err)
	_, err = enc.Write(plain)
	require.NoError(t, err)

	src := stream.NewCString(stream.Bytes(sink))
	dec, err := streamaes.NewDecrypter(src, key, iv, streamaes.CFB)
	require.NoError(t, err)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestOFBRoundTrip(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := mustHex(t, "6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51")

	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc, err := streamaes.NewEncrypter(sink, key, iv, streamaes.OFB)
	require.NoError(t, err)
	_, err = enc.Write(plain)
	require.NoError(t, err)

	src := stream.NewCString(stream.Bytes(sink))
	dec, err := streamaes.NewDecrypter(src, key, iv, streamaes.OFB)
	require.NoError(t, err)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestPCBCRoundTrip(t *testing.T) {
	key := mustHex(t, "2b7e151628aed2a6abf7158809cf4f3c")
	iv := mustHex(t, "000102030405060708090a0b0c0d0e0f")
	plain := mustHex(t, "6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e51")

	sink := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	enc, err := streamaes.NewEncrypter(sink, key, iv, streamaes.PCBC)
	require.NoError(t, err)
	_, err = enc.Write(plain)
	require.NoError(t, err)

	src := stream.NewCString(stream.Bytes(sink))
	dec, err := streamaes.NewDecrypter(src, key, iv, streamaes.PCBC)
	require.NoError(t, err)
	out, err := io.ReadAll(dec)
	require.NoError(t, err)
	require.Equal(t, plain, out)
}

func TestInvalidKeySize(t *testing.T) {
	_, err := streamaes.NewEncrypter(stream.NewEmpty(), make([]byte, 10), nil, streamaes.ECB)
	require.ErrorIs(t, err, streamaes.ErrInvalidKeySize)
}
