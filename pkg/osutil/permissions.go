// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package osutil contains utility functions related to the os package.
package osutil

import "os"

const (
	// PermissionFile is the mode for files anyone on the machine may read,
	// such as diagnostics traces.
	PermissionFile os.FileMode = 0644

	// PermissionFileOwnerOnly is the mode for files that may carry secrets,
	// such as a local.settings.json holding a connection string.
	PermissionFileOwnerOnly os.FileMode = 0600
)
