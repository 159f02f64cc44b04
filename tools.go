//go:build tools

// Package supportchat tracks build-time tools so `go generate` works on a
// fresh checkout. Nothing here is compiled into the binaries.
package supportchat

import (
	_ "go.uber.org/mock/mockgen"
)
