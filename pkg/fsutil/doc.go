// Package fsutil provides filesystem helpers shared by the CLI.
//
// Key functionality:
//   - Path operations: ExpandHomePath
//   - File reading: ReadFile
package fsutil
