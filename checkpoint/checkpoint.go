// Copyright 2025 The GradNet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package checkpoint provides the public API for saving and restoring a
// network's parameter blobs.
//
// Example:
//
//	_ = checkpoint.Save("model.gnet", net)
//	_ = checkpoint.Load("model.gnet", net)
package checkpoint

import (
	"io"

	"github.com/gradnet-ml/gradnet/internal/checkpoint"
	"github.com/gradnet-ml/gradnet/internal/nn"
)

// Common errors.
var (
	ErrInvalidMagic       = checkpoint.ErrInvalidMagic
	ErrUnsupportedVersion = checkpoint.ErrUnsupportedVersion
	ErrChecksumMismatch   = checkpoint.ErrChecksumMismatch
	ErrLayerCountMismatch = checkpoint.ErrLayerCountMismatch
)

// Save writes net's parameter blobs to path.
func Save(path string, net *nn.Network) error {
	return checkpoint.Save(path, net)
}

// Load reads parameter blobs from path and installs them into net.
func Load(path string, net *nn.Network) error {
	return checkpoint.Load(path, net)
}

// Write serializes net's parameter blobs to w.
func Write(w io.Writer, net *nn.Network) error {
	return checkpoint.Write(w, net)
}

// Read deserializes parameter blobs from r and installs them into net.
func Read(r io.Reader, net *nn.Network) error {
	return checkpoint.Read(r, net)
}
