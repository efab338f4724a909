package rwlease

// ============================================================================
// Guards
// ============================================================================

// ReadGuard is one granted read permit. Release it exactly once, usually
// with defer:
//
//	g, err := l.Read()
//	if err != nil {
//		return err
//	}
//	defer g.Release()
//	use(g.Get())
//
// A ReadGuard must not be copied and must not outlive its Lease.
type ReadGuard[T any, W Word] struct {
	_ noCopy
	l *Lease[T, W]
}

// Get returns a copy of the protected value.
func (g *ReadGuard[T, W]) Get() T {
	return g.lease().value
}

// Release gives the permit back. Calling it again panics.
func (g *ReadGuard[T, W]) Release() {
	l := g.lease()
	g.l = nil
	l.releaseRead()
}

func (g *ReadGuard[T, W]) lease() *Lease[T, W] {
	if g.l == nil {
		panic("rwlease: use of released ReadGuard")
	}
	return g.l
}

// WriteGuard is granted exclusive access. Release it exactly once.
//
// A WriteGuard must not be copied and must not outlive its Lease.
type WriteGuard[T any, W Word] struct {
	_ noCopy
	l *Lease[T, W]
}

// Get returns a copy of the protected value.
func (g *WriteGuard[T, W]) Get() T {
	return g.lease().value
}

// Set replaces the protected value.
func (g *WriteGuard[T, W]) Set(v T) {
	g.lease().value = v
}

// Ptr returns a pointer to the protected value for in-place updates.
// The pointer must not be used after Release.
func (g *WriteGuard[T, W]) Ptr() *T {
	return &g.lease().value
}

// Release clears the writer flag. Calling it again panics.
func (g *WriteGuard[T, W]) Release() {
	l := g.lease()
	g.l = nil
	l.releaseWrite()
}

func (g *WriteGuard[T, W]) lease() *Lease[T, W] {
	if g.l == nil {
		panic("rwlease: use of released WriteGuard")
	}
	return g.l
}

// DrainGuard holds writer intent while readers that were admitted before
// the claim finish. It grants no access to the value. It ends either by
// upgrading to a WriteGuard or by Release, which abandons the claim.
//
// A DrainGuard must not be copied and must not outlive its Lease.
type DrainGuard[T any, W Word] struct {
	_ noCopy
	l *Lease[T, W]
}

// Drained reports whether the readers are gone, so that TryUpgrade would
// succeed.
func (g *DrainGuard[T, W]) Drained() bool {
	return g.lease().drained()
}

// TryUpgrade returns a WriteGuard if the readers are gone. On success the
// release obligation moves to the WriteGuard and g is spent. Otherwise g
// is left as it was, so the caller may try again or Release.
func (g *DrainGuard[T, W]) TryUpgrade() (WriteGuard[T, W], bool) {
	l := g.lease()
	if !l.drained() {
		return WriteGuard[T, W]{}, false
	}
	g.l = nil
	return WriteGuard[T, W]{l: l}, true
}

// Upgrade waits for the readers to go and returns a WriteGuard. The
// release obligation moves to the WriteGuard and g is spent.
func (g *DrainGuard[T, W]) Upgrade() WriteGuard[T, W] {
	l := g.lease()
	g.l = nil
	l.drain()
	return WriteGuard[T, W]{l: l}
}

// Release abandons the claim, letting readers in again. Calling it again,
// or after a successful upgrade, panics.
func (g *DrainGuard[T, W]) Release() {
	l := g.lease()
	g.l = nil
	l.releaseWrite()
}

func (g *DrainGuard[T, W]) lease() *Lease[T, W] {
	if g.l == nil {
		panic("rwlease: use of released DrainGuard")
	}
	return g.l
}
