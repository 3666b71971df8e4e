package dispatch

// DefaultLoginPath is where clients are sent to re-authenticate.
const DefaultLoginPath = "auth/login"

// Navigator performs the navigation away from the running application. Once
// called the client's in-memory state is considered abandoned.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) {
	f(path)
}
