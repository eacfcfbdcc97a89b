package port

// Notifier shows transient notifications to one client.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Navigator moves one client to another route.
type Navigator interface {
	// Navigate pushes path onto the client's history.
	Navigate(path string)

	// Replace swaps the current history entry for path.
	Replace(path string)
}
