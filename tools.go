//go:build tools
// +build tools

package slrkit

import (
	_ "golang.org/x/tools/cmd/stringer"
)
