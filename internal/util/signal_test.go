package util

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitShutdown_FirstSignalIsGraceful(t *testing.T) {
	quit := make(chan os.Signal, 1)
	forced := make(chan struct{}, 1)
	force := func() { forced <- struct{}{} }

	quit <- syscall.SIGTERM
	sig := AwaitShutdown(quit, force)
	assert.Equal(t, syscall.SIGTERM, sig)

	select {
	case <-forced:
		t.Fatal("first signal must not force exit")
	case <-time.After(50 * time.Millisecond):
	}

	quit <- syscall.SIGINT
	select {
	case <-forced:
	case <-time.After(time.Second):
		require.Fail(t, "second signal did not force exit")
	}
}
