package artifact

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"gonum.org/v1/gonum/mat"

	multiomics "github.com/arunb2895/multi-omics-enteric-neurons"
	"github.com/arunb2895/multi-omics-enteric-neurons/blobstore"
	"github.com/arunb2895/multi-omics-enteric-neurons/codec"
)

// File layout:
//
//	[4]  magic "OMEB"
//	[1]  format version
//	[1]  compression type
//	[1]  codec name length
//	[n]  codec name
//	[4]  CRC32 (IEEE) of the compressed payload block, little-endian
//	[4]  payload block length, little-endian
//	[n]  payload block (see compression.go)
var magic = [4]byte{'O', 'M', 'E', 'B'}

// FormatVersion is the current artifact format version.
const FormatVersion = 1

var (
	// ErrBadMagic is returned when the blob does not start with the artifact magic.
	ErrBadMagic = errors.New("not an embedding artifact (bad magic)")
	// ErrUnsupportedVersion is returned for artifacts written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported artifact format version")
	// ErrUnknownCodec is returned when the recorded codec is not registered.
	ErrUnknownCodec = errors.New("unknown artifact codec")
	// ErrTruncated is returned when the blob is shorter than its header claims.
	ErrTruncated = errors.New("truncated artifact")
)

// ChecksumMismatchError is returned when payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("artifact checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// Option configures encoding.
type Option func(*options)

type options struct {
	codec       codec.Codec
	compression CompressionType
}

// WithCodec sets the payload codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithCompression sets the payload compression. Defaults to CompressionZSTD.
func WithCompression(ct CompressionType) Option {
	return func(o *options) {
		o.compression = ct
	}
}

func applyOptions(optFns ...Option) options {
	opts := options{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts
}

// payload is the codec-encoded body of an artifact.
type payload struct {
	SampleIDs        []string             `json:"sample_ids"`
	Components       int                  `json:"components"`
	Coords           []float64            `json:"coords"` // row-major, len == len(SampleIDs)*Components
	Warnings         []payloadWarning     `json:"warnings,omitempty"`
	ModalityVariance map[string][]float64 `json:"modality_variance,omitempty"`
	JointVariance    []float64            `json:"joint_variance,omitempty"`
}

type payloadWarning struct {
	Stage     string `json:"stage"`
	Requested int    `json:"requested"`
	Effective int    `json:"effective"`
}

// Encode serializes an embedding into the artifact wire format.
func Encode(emb *multiomics.Embedding, optFns ...Option) ([]byte, error) {
	opts := applyOptions(optFns...)

	p := payload{
		SampleIDs:        emb.SampleIDs,
		Components:       emb.Components(),
		ModalityVariance: emb.ModalityVariance,
		JointVariance:    emb.JointVariance,
	}
	if emb.Coords != nil {
		n, k := emb.Coords.Dims()
		p.Coords = make([]float64, 0, n*k)
		for i := 0; i < n; i++ {
			p.Coords = append(p.Coords, emb.Coords.RawRowView(i)...)
		}
	}
	for _, w := range emb.Warnings {
		p.Warnings = append(p.Warnings, payloadWarning{
			Stage:     w.Stage,
			Requested: w.Requested,
			Effective: w.Effective,
		})
	}

	body, err := opts.codec.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	block, err := compressBlock(body, opts.compression)
	if err != nil {
		return nil, fmt.Errorf("compress payload: %w", err)
	}

	name := opts.codec.Name()
	if len(name) > 255 {
		return nil, errors.New("codec name too long")
	}

	out := make([]byte, 0, len(magic)+3+len(name)+8+len(block))
	out = append(out, magic[:]...)
	out = append(out, FormatVersion, byte(opts.compression), byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(block))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(block)))
	out = append(out, block...)
	return out, nil
}

// Decode parses an artifact produced by Encode.
func Decode(data []byte) (*multiomics.Embedding, error) {
	if len(data) < len(magic)+3 {
		return nil, ErrBadMagic
	}
	if [4]byte(data[:4]) != magic {
		return nil, ErrBadMagic
	}
	if data[4] != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}
	compression := CompressionType(data[5])
	nameLen := int(data[6])

	rest := data[7:]
	if len(rest) < nameLen+8 {
		return nil, ErrTruncated
	}
	codecName := string(rest[:nameLen])
	c, ok := codec.ByName(codecName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, codecName)
	}

	sum := binary.LittleEndian.Uint32(rest[nameLen:])
	blockLen := binary.LittleEndian.Uint32(rest[nameLen+4:])
	block := rest[nameLen+8:]
	if uint32(len(block)) < blockLen {
		return nil, ErrTruncated
	}
	block = block[:blockLen]

	if actual := crc32.ChecksumIEEE(block); actual != sum {
		return nil, &ChecksumMismatchError{Expected: sum, Actual: actual}
	}

	body, err := decompressBlock(block, compression)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	var p payload
	if err := c.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p.toEmbedding()
}

func (p *payload) toEmbedding() (*multiomics.Embedding, error) {
	n := len(p.SampleIDs)
	if len(p.Coords) != n*p.Components {
		return nil, fmt.Errorf("artifact payload: %d coords for %d samples x %d components", len(p.Coords), n, p.Components)
	}

	emb := &multiomics.Embedding{
		SampleIDs:        p.SampleIDs,
		ModalityVariance: p.ModalityVariance,
		JointVariance:    p.JointVariance,
	}
	if n > 0 && p.Components > 0 {
		emb.Coords = mat.NewDense(n, p.Components, p.Coords)
	}
	for _, w := range p.Warnings {
		emb.Warnings = append(emb.Warnings, multiomics.ClampWarning{
			Stage:     w.Stage,
			Requested: w.Requested,
			Effective: w.Effective,
		})
	}
	return emb, nil
}

// Save encodes the embedding and writes it to the store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, emb *multiomics.Embedding, optFns ...Option) error {
	data, err := Encode(emb, optFns...)
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}

// Load reads and decodes the artifact stored under name.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*multiomics.Embedding, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
