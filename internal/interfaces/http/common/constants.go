package common

const (
	// DefaultMaxRequestBody limits JSON request bodies for submission endpoints.
	DefaultMaxRequestBody = 1 << 20
)
