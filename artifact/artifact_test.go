package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	multiomics "github.com/arunb2895/multi-omics-enteric-neurons"
	"github.com/arunb2895/multi-omics-enteric-neurons/blobstore"
	"github.com/arunb2895/multi-omics-enteric-neurons/codec"
)

func testEmbedding() *multiomics.Embedding {
	return &multiomics.Embedding{
		SampleIDs: []string{"s1", "s2", "s3"},
		Coords: mat.NewDense(3, 2, []float64{
			0.5, -1.25,
			2.0, 0.75,
			-0.5, 1.5,
		}),
		Warnings: []multiomics.ClampWarning{
			{Stage: multiomics.JointStage, Requested: 10, Effective: 2},
		},
		ModalityVariance: map[string][]float64{
			"rna":   {0.6, 0.3},
			"metab": {0.8},
		},
		JointVariance: []float64{0.7, 0.2},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	for name, opts := range map[string][]Option{
		"defaults": nil,
		"zstd":     {WithCompression(CompressionZSTD)},
		"lz4":      {WithCompression(CompressionLZ4)},
		"none":     {WithCompression(CompressionNone)},
		"json":     {WithCodec(codec.JSON{})},
	} {
		t.Run(name, func(t *testing.T) {
			in := testEmbedding()

			data, err := Encode(in, opts...)
			require.NoError(t, err)

			out, err := Decode(data)
			require.NoError(t, err)

			assert.Equal(t, in.SampleIDs, out.SampleIDs)
			assert.Equal(t, in.Coords.RawMatrix().Data, out.Coords.RawMatrix().Data)
			assert.Equal(t, in.Warnings, out.Warnings)
			assert.Equal(t, in.ModalityVariance, out.ModalityVariance)
			assert.Equal(t, in.JointVariance, out.JointVariance)
		})
	}
}

func TestDecode_BadMagic(t *testing.T) {
	_, err := Decode([]byte("not an artifact at all"))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = Decode(nil)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	data, err := Encode(testEmbedding())
	require.NoError(t, err)

	data[4] = 99
	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecode_CorruptedPayload(t *testing.T) {
	data, err := Encode(testEmbedding())
	require.NoError(t, err)

	// Flip a byte in the payload block.
	data[len(data)-1] ^= 0xff

	_, err = Decode(data)
	var mismatch *ChecksumMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestDecode_Truncated(t *testing.T) {
	data, err := Encode(testEmbedding())
	require.NoError(t, err)

	_, err = Decode(data[:len(data)-4])
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	in := testEmbedding()
	require.NoError(t, Save(ctx, store, "run-1", in, WithCompression(CompressionLZ4)))

	out, err := Load(ctx, store, "run-1")
	require.NoError(t, err)
	assert.Equal(t, in.SampleIDs, out.SampleIDs)
	assert.Equal(t, in.Coords.RawMatrix().Data, out.Coords.RawMatrix().Data)

	_, err = Load(ctx, store, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestCompressBlock_RoundTrip(t *testing.T) {
	// Repetitive data compresses; both algorithms must invert cleanly.
	data := make([]byte, 4096)
	for i := range data {
		data[i] = byte(i % 7)
	}

	for _, ct := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
		block, err := compressBlock(data, ct)
		require.NoError(t, err)

		out, err := decompressBlock(block, ct)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}
}
