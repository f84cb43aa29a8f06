// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package internal

import (
	"strings"

	"github.com/blang/semver/v4"
)

// Version is the version string reported by `funcbind version`. It is stamped
// at build time via ldflags:
//
//	-ldflags="-X 'github.com/azure/funcbind/internal.Version=$(VERSION)'"
//
// The default value is a sentinel used by dev builds installed with `go install`.
var Version = "0.0.0-dev.0 (commit 0000000000000000000000000000000000000000)"

// GetVersionNumber returns the semantic version portion of Version, or
// "unknown" when Version does not carry a parseable semver.
func GetVersionNumber() string {
	number, _, _ := strings.Cut(Version, " ")
	if _, err := semver.Parse(number); err != nil {
		return "unknown"
	}

	return number
}
