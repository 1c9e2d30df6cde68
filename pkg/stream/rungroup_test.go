package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunGroup(t *testing.T) {
	var rg RunGroup
	require.Nil(t, rg.Err())

	release := make(chan struct{})
	rg.Run(context.Background(), func(context.Context) error {
		<-release
		return errFake
	})

	// only the first call has an effect
	rg.Run(context.Background(), func(context.Context) error {
		t.Error("second worker must not run")
		return nil
	})

	require.Nil(t, rg.Err(), "no outcome while running")
	close(release)

	require.ErrorIs(t, rg.Wait(), errFake)
	<-rg.Done()
	require.ErrorIs(t, rg.Err(), errFake)
	require.ErrorIs(t, rg.Wait(), errFake)
}

func TestRunGroupPanic(t *testing.T) {
	t.Run("value", func(t *testing.T) {
		var rg RunGroup
		rg.Run(context.Background(), func(context.Context) error {
			panic("boom")
		})

		var perr *PanicError
		require.True(t, errors.As(rg.Wait(), &perr))
		require.Equal(t, "boom", perr.Value)
		require.Contains(t, perr.Error(), "boom")
		require.NotEmpty(t, perr.Stack)
	})

	t.Run("error", func(t *testing.T) {
		var rg RunGroup
		rg.Run(context.Background(), func(context.Context) error {
			panic(errFake)
		})
		require.ErrorIs(t, rg.Wait(), errFake)
	})
}

func TestRunGroupContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var rg RunGroup
	rg.Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	cancel()

	select {
	case <-rg.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not observe cancellation")
	}
	require.ErrorIs(t, rg.Err(), context.Canceled)
}
