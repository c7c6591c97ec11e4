//
// Copyright (C) 2025 Ringside Authors. All rights reserved.
//
// ringside is licensed under the Apache License Version 2.0.
//
//

// Package model defines the text generation interface.
package model

import "context"

// Generator produces a free-text completion from a prompt.
//
// Each call is independent: no conversation state is held between calls.
// Implementations make external network calls and may take seconds to
// respond; output is not guaranteed to be deterministic.
type Generator interface {
	// Complete generates text from the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}
