//go:build !windows

package backend

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize turns SIGWINCH into resize events until the terminal closes.
func (t *Terminal) watchResize() func() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, unix.SIGWINCH)

	go func() {
		for {
			select {
			case <-sigCh:
				t.post(Key(EventResize))
			case <-t.done:
				return
			}
		}
	}()

	return func() { signal.Stop(sigCh) }
}
