//go:build windows

package backend

// watchResize is a no-op on Windows, which has no SIGWINCH. Size changes are
// picked up on the next forced resize (Ctrl-R).
func (t *Terminal) watchResize() func() {
	return func() {}
}
