// Package checkpoint saves and restores a network's parameter blobs.
//
// The on-disk format is a small binary container:
//
//	magic "GNET" | uint32 header length | JSON header | blob data
//
// The JSON header lists one entry per layer, in layer order, with the blob
// shape and its offset/size in the data section, plus a SHA-256 checksum of
// the data section. Parameter-free layers are recorded with a null shape and
// occupy no data. Blobs are stored as little-endian float64.
package checkpoint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gradnet-ml/gradnet/internal/nn"
	"github.com/gradnet-ml/gradnet/internal/tensor"
)

// Format constants.
const (
	magicBytes    = "GNET"
	formatVersion = 1
	maxHeaderSize = 1 << 20 // sanity bound when reading untrusted files
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("checkpoint: invalid magic bytes")
	ErrUnsupportedVersion = errors.New("checkpoint: unsupported format version")
	ErrChecksumMismatch   = errors.New("checkpoint: checksum mismatch: file may be corrupted")
	ErrLayerCountMismatch = errors.New("checkpoint: layer count does not match network")
)

// header is the JSON header of a checkpoint file.
type header struct {
	FormatVersion int         `json:"format_version"`
	CreatedAt     time.Time   `json:"created_at"`
	Checksum      string      `json:"checksum"` // SHA-256 of the data section, hex
	Layers        []layerMeta `json:"layers"`
}

// layerMeta describes one layer's parameter blob in the data section.
type layerMeta struct {
	Shape  tensor.Shape `json:"shape"` // nil for a parameter-free layer
	Offset int64        `json:"offset"`
	Size   int64        `json:"size"`
}

// Save writes net's parameter blobs to path.
func Save(path string, net *nn.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()

	if err := Write(f, net); err != nil {
		return err
	}
	return f.Close()
}

// Write serializes net's parameter blobs to w.
func Write(w io.Writer, net *nn.Network) error {
	params := net.Parameters()

	var data []byte
	metas := make([]layerMeta, len(params))
	for i, p := range params {
		if p == nil {
			continue
		}
		blob := encodeBlob(p)
		metas[i] = layerMeta{
			Shape:  p.Shape().Clone(),
			Offset: int64(len(data)),
			Size:   int64(len(blob)),
		}
		data = append(data, blob...)
	}

	sum := sha256.Sum256(data)
	hdr, err := json.Marshal(header{
		FormatVersion: formatVersion,
		CreatedAt:     time.Now().UTC(),
		Checksum:      hex.EncodeToString(sum[:]),
		Layers:        metas,
	})
	if err != nil {
		return fmt.Errorf("checkpoint: encode header: %w", err)
	}

	if _, err := w.Write([]byte(magicBytes)); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(hdr))); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// Load reads parameter blobs from path and installs them into net with
// SetParameters. The file's layer count and blob shapes must match the
// network exactly.
func Load(path string, net *nn.Network) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	defer f.Close()
	return Read(f, net)
}

// Read deserializes parameter blobs from r and installs them into net.
func Read(r io.Reader, net *nn.Network) error {
	magic := make([]byte, len(magicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if string(magic) != magicBytes {
		return ErrInvalidMagic
	}

	var hdrLen uint32
	if err := binary.Read(r, binary.LittleEndian, &hdrLen); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	if hdrLen > maxHeaderSize {
		return fmt.Errorf("checkpoint: header size %d exceeds limit", hdrLen)
	}
	hdrBytes := make([]byte, hdrLen)
	if _, err := io.ReadFull(r, hdrBytes); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}

	var hdr header
	if err := json.Unmarshal(hdrBytes, &hdr); err != nil {
		return fmt.Errorf("checkpoint: decode header: %w", err)
	}
	if hdr.FormatVersion != formatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr.FormatVersion)
	}
	if len(hdr.Layers) != net.Len() {
		return fmt.Errorf("%w: file has %d, network has %d", ErrLayerCountMismatch, len(hdr.Layers), net.Len())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != hdr.Checksum {
		return ErrChecksumMismatch
	}

	params := make([]*tensor.Tensor, len(hdr.Layers))
	for i, meta := range hdr.Layers {
		if meta.Shape == nil {
			continue
		}
		end := meta.Offset + meta.Size
		if meta.Offset < 0 || meta.Size < 0 || end > int64(len(data)) {
			return fmt.Errorf("checkpoint: layer %d blob extends beyond data section", i+1)
		}
		blob, err := decodeBlob(data[meta.Offset:end], meta.Shape)
		if err != nil {
			return fmt.Errorf("checkpoint: layer %d: %w", i+1, err)
		}
		params[i] = blob
	}
	if err := net.SetParameters(params); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}

// encodeBlob serializes a tensor's elements as little-endian float64.
func encodeBlob(t *tensor.Tensor) []byte {
	buf := make([]byte, 8*t.NumElements())
	for i, v := range t.Data() {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

// decodeBlob deserializes little-endian float64 elements into a tensor of
// the given shape.
func decodeBlob(buf []byte, shape tensor.Shape) (*tensor.Tensor, error) {
	t, err := tensor.New(shape)
	if err != nil {
		return nil, err
	}
	if len(buf) != 8*t.NumElements() {
		return nil, fmt.Errorf("blob has %d bytes, shape %v needs %d", len(buf), shape, 8*t.NumElements())
	}
	d := t.Data()
	for i := range d {
		d[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}
	return t, nil
}
