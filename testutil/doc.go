// Package testutil adds test-only lifecycle methods to components.
//
// A TestComponent can be reset between cases and snapshotted so a test can
// return to a known state:
//
//	func TestCheckout(t *testing.T) {
//		h := testutil.T(t)
//		h.Setup(mockComponent)
//		snap := h.Snapshot(mockComponent)
//		// ... mutate
//		h.Restore(mockComponent, snap)
//	}
package testutil
