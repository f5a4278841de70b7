package nav

// CanGoBack decides what a back press does. With stacked views or nested
// menu frames it goes back; on the first page it may exit when
// exitOnFirstPageBack is set; otherwise it does nothing.
func CanGoBack(stackDepth, menuDepth int, exitOnFirstPageBack bool) (canBack, shouldExit bool) {
	if stackDepth > 0 || menuDepth > 1 {
		return true, false
	}
	return false, exitOnFirstPageBack
}

// hasParent reports whether there is a collection to return to.
func hasParent(ctx Context) bool {
	back, _ := CanGoBack(ctx.StackDepth, ctx.View.MenuDepth, false)
	return back
}
