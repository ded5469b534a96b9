// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package teelimiter_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/stream"
	"code.hybscloud.com/stream/filter/teelimiter"
)

func TestTeeDuplicatesWrites(t *testing.T) {
	a := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	b := stream.NewAmortizedGrowableBuffer(stream.ModeRead|stream.ModeWrite, false)
	tee := teelimiter.NewTee(a, b)

	n, err := tee.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("hello"), stream.Bytes(a))
	require.Equal(t, []byte("hello"), stream.Bytes(b))
}

func TestConcatDrainsBothInOrder(t *testing.T) {
	a := stream.NewCString([]byte("abc"))
	b := stream.NewCString([]byte("def"))
	c := teelimiter.NewConcat(a, b)

	out, err := io.ReadAll(c)
	require.NoError(t, err)
	require.Equal(t, "abcdef", string(out))
}

func TestLimiterBoundsReadWindow(t *testing.T) {
	src := stream.NewSizedBuffer([]byte("0123456789"), stream.ModeRead|stream.ModeWrite)
	lim, err := teelimiter.NewLimiter(src, 2, 4)
	require.NoError(t, err)

	out, err := io.ReadAll(lim)
	require.NoError(t, err)
	require.Equal(t, "2345", string(out))
}

func TestTeeIntoSizedBuffersErrorsPastCapacity(t *testing.T) {
	a := stream.NewSizedBuffer(make([]byte, 10), stream.ModeRead|stream.ModeWrite)
	b := stream.NewSizedBuffer(make([]byte, 10), stream.ModeRead|stream.ModeWrite)
	tee := teelimiter.NewTee(a, b)

	src := []byte("012345678901234567890") // 21 bytes
	require.Len(t, src, 21)

	var wrote int
	var writeErr error
	for i, c := range src {
		_, err := tee.Write([]byte{c})
		if err != nil {
			wrote = i
			writeErr = err
			break
		}
	}

	require.ErrorIs(t, writeErr, stream.ErrNoBufferSpace)
	require.Equal(t, 10, wrote)

	// The failed write leaves a sticky error on the buffers; clear it
	// before repositioning them.
	a.Clearerr()
	b.Clearerr()

	abuf := make([]byte, 10)
	_, err := a.Seek(0, stream.OriginStart)
	require.NoError(t, err)
	rn, err := a.Read(abuf)
	require.NoError(t, err)
	require.Equal(t, 10, rn)
	require.Equal(t, src[:10], abuf)

	bbuf := make([]byte, 10)
	_, err = b.Seek(0, stream.OriginStart)
	require.NoError(t, err)
	rn, err = b.Read(bbuf)
	require.NoError(t, err)
	require.Equal(t, 10, rn)
	require.Equal(t, src[:10], bbuf)
}

func TestLimiterSeekOutsideWindowFails(t *testing.T) {
	src := stream.NewSizedBuffer([]byte("0123456789"), stream.ModeRead|stream.ModeWrite)
	lim, err := teelimiter.NewLimiter(src, 2, 4)
	require.NoError(t, err)

	_, err = lim.Seek(10, stream.OriginStart)
	require.ErrorIs(t, err, stream.ErrInvalidArgument)
}
