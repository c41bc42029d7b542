package handler

const (
	// RootPath is the root path of the route group.
	RootPath = "/"

	// ErrNilDepsFatalLogMsg is used if the app or deps pointer is nil.
	ErrNilDepsFatalLogMsg = "app or deps is nil"
)
