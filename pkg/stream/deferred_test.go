package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPromise(t *testing.T) {
	t.Run("fulfill", func(t *testing.T) {
		p := NewPromise()
		go func() {
			time.Sleep(time.Millisecond)
			_ = p.Fulfill([]byte("data"))
		}()

		data, err := p.Resolve(context.Background())
		require.Nil(t, err)
		require.Equal(t, "data", string(data))

		// resolving again yields the same result
		data, err = p.Resolve(context.Background())
		require.Nil(t, err)
		require.Equal(t, "data", string(data))

		require.ErrorIs(t, p.Fulfill([]byte("other")), ErrPromiseSettled)
		require.ErrorIs(t, p.Fail(errFake), ErrPromiseSettled)
	})

	t.Run("fail", func(t *testing.T) {
		p := NewPromise()
		require.Nil(t, p.Fail(errFake))

		_, err := p.Resolve(context.Background())
		require.ErrorIs(t, err, errFake)
	})

	t.Run("fail without cause", func(t *testing.T) {
		p := NewPromise()
		require.Nil(t, p.Fail(nil))

		_, err := p.Resolve(context.Background())
		require.NotNil(t, err)
	})

	t.Run("context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewPromise().Resolve(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestReadyAndFunc(t *testing.T) {
	data, err := Ready("abc").Resolve(context.Background())
	require.Nil(t, err)
	require.Equal(t, "abc", string(data))

	f := Func(func(context.Context) ([]byte, error) {
		return nil, errFake
	})
	_, err = f.Resolve(context.Background())
	require.ErrorIs(t, err, errFake)
}
