// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxWizardBodySize caps every schedule wizard request body. The largest
	// legitimate body is the details form.
	MaxWizardBodySize = 64 << 10 // 64 KB
)
