package util

import "os"

// AwaitShutdown blocks until the first signal arrives. A second signal calls force,
// so a stuck graceful shutdown can still be interrupted.
func AwaitShutdown(quit <-chan os.Signal, force func()) os.Signal {
	sig := <-quit
	go func() {
		<-quit
		force()
	}()
	return sig
}
