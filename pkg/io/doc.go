// Package io provides utilities for input and output operations related to configuration management.
//
// Subpackages:
//   - config-manager: Configuration loading and management
//   - marshaller: Serialization and deserialization
//
// For file reading and path manipulation, see the fsutil package.
package io
