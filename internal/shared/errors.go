package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrSchemaMissing = fmt.Errorf("database schema not initialized")
	ErrPostNotFound  = fmt.Errorf("post not found")

	// Import errors
	ErrImportFailed = fmt.Errorf("import finished with failures")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
