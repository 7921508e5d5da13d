// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody caps JSON request bodies (sign-in, dispatched actions).
	MaxJSONBody = 1 << 20 // 1 MB
)
