package cli

// requireLogin gates commands that need an active session. A logged-out
// user is told to log in instead of the command issuing a request that
// would be rejected anyway.
func requireLogin(a execIface) bool {
	if a.isLoggedIn() {
		return true
	}
	printlnFn("Please log in first.")
	return false
}
