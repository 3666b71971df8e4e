package utils

// Ptr returns a pointer to a copy of v, for optional fields such as the
// flags of a user update.
func Ptr[T any](v T) *T {
	return &v
}
