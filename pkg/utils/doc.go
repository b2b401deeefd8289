// Package utils provides utility packages for common operations.
//
//   - envvar: ${VAR} placeholder expansion for args files and manifests
//   - notify: Formatted message display with symbols and colors
package utils
