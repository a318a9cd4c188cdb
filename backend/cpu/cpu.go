// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/storch/internal/backend/cpu"
	"github.com/born-ml/storch/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/storch/backend/cpu"
//	    "github.com/born-ml/storch/graph"
//	)
//
//	func main() {
//	    ctx := graph.NewContext(cpu.New())
//	    // build graphs against ctx
//	}
func New() *Backend {
	return internalcpu.New()
}
