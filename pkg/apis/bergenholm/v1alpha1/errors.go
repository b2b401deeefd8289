package v1alpha1

import "errors"

// ErrInvalidGroupState is returned when a group state outside present/absent is specified.
var ErrInvalidGroupState = errors.New("invalid group state")

// ErrInvalidHostState is returned when a host state is not one of present, absent,
// installed or uninstalled.
var ErrInvalidHostState = errors.New("invalid host state")

// ErrInvalidOutputFormat is returned when an unsupported output format is specified.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// ErrNameRequired is returned when a group input has no name.
var ErrNameRequired = errors.New("group name is required")

// ErrUUIDRequired is returned when a host input has no UUID.
var ErrUUIDRequired = errors.New("host uuid is required")

// ErrInvalidIdentifier is returned when an identifier cannot be used as a REST path key.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// ErrInvalidGroups is returned when the groups field of a host is not a list.
var ErrInvalidGroups = errors.New("groups must be a list")

// ErrDuplicateIdentifier is returned when a manifest names the same resource twice.
var ErrDuplicateIdentifier = errors.New("duplicate identifier in manifest")

// ErrInvalidManifest is returned when a manifest header does not describe a bergctl manifest.
var ErrInvalidManifest = errors.New("invalid manifest")
