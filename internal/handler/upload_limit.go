package handler

import "fmt"

// formatUploadLimit renders a byte limit as whole megabytes for user-facing
// error messages. Limits under one megabyte round up to 1MB.
func formatUploadLimit(limit int64) string {
	const mb int64 = 1 << 20
	if limit <= 0 {
		return "0MB"
	}
	value := (limit + mb - 1) / mb
	return fmt.Sprintf("%dMB", value)
}
