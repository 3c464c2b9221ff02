// Package coder implements the streaming systematic erasure encoder and
// decoder: fan data out across N shard writers such that any K of them
// reconstruct the original stream, using the binary expansion of a
// Cauchy matrix over field.Field so the per-block inner loop is XOR of
// whole words rather than field multiplication.
package coder

import (
	"io"

	"github.com/minio/erasurecore/internal/blockcodec"
	"github.com/minio/erasurecore/internal/codeerr"
	"github.com/minio/erasurecore/internal/field"
	"github.com/minio/erasurecore/internal/fieldmatrix"
	"github.com/minio/erasurecore/internal/metrics"
	"github.com/minio/erasurecore/internal/streamio"
)

// Coder is an immutable (N, K, w) configuration: the total shard count,
// the data shard count, and the word width in bytes. Constructing one
// builds the N x K Cauchy encoder over the smallest field that fits N+K
// elements, and its binary expansion, once, for reuse across every block
// of every Encode or Decode call.
type Coder struct {
	N int
	K int
	W int

	field      *field.Field
	encoder    *fieldmatrix.Matrix // N x K Cauchy matrix over field
	encoderBin *fieldmatrix.Matrix // (N*n) x (K*n) binary expansion
	codec      *blockcodec.Codec
}

// New builds a Coder for N total shards, K data shards, and word width w.
// w must be one of {1,2,4,8}; 1 <= K <= N. The field degree n is the
// smallest integer >= 2 with 2^n >= N+K; construction fails with
// ValueError if that degree would exceed 7, or if the resulting data
// block size would exceed one byte (see blockcodec.New).
func New(n, k, w int) (*Coder, error) {
	if k < 1 || k > n {
		return nil, codeerr.NewValueError("K", k, "in [1,N]")
	}
	degree := 2
	for (1 << uint(degree)) < n+k {
		degree++
	}
	if degree > 7 {
		return nil, codeerr.NewValueError("field degree for N+K", n+k, "<= 2^7")
	}
	f, err := field.New(degree)
	if err != nil {
		return nil, err
	}

	encoder, err := fieldmatrix.New(n, k, f)
	if err != nil {
		return nil, err
	}
	if err := encoder.SetCauchy(); err != nil {
		return nil, err
	}
	encoderBin, err := encoder.ToBinary()
	if err != nil {
		return nil, err
	}

	codec, err := blockcodec.New(w, degree, k)
	if err != nil {
		return nil, err
	}

	return &Coder{
		N: n, K: k, W: w,
		field: f, encoder: encoder, encoderBin: encoderBin, codec: codec,
	}, nil
}

// applyBinaryMatrix computes m * vec where m has entries in {0,1}: row i
// of the output is the XOR of every vec[j] for which m[i][j] == 1. vec
// holds raw w-byte words, not field elements, so this deliberately
// bypasses fieldmatrix.Matrix.Multiply (which would reject words wider
// than the field's order).
func applyBinaryMatrix(m *fieldmatrix.Matrix, vec []int) []int {
	out := make([]int, m.Rows)
	for i := 0; i < m.Rows; i++ {
		acc := 0
		for j := 0; j < m.Cols; j++ {
			if m.Get(i, j) == 1 {
				acc ^= vec[j]
			}
		}
		out[i] = acc
	}
	return out
}

// Encode reads r to exhaustion, writing N code shards to writers (in
// shard order), and returns the exact byte count of r's contents.
func (c *Coder) Encode(r io.Reader, writers []io.Writer) (int64, error) {
	if len(writers) != c.N {
		return 0, codeerr.NewValueError("writers", len(writers), "exactly N writers")
	}
	var total int64
	for {
		data, blockSize, done, err := c.codec.ReadDataBlock(r)
		if err != nil {
			return 0, err
		}
		code := applyBinaryMatrix(c.encoderBin, data)
		if err := c.codec.WriteCodeBlock(writers, code); err != nil {
			return 0, err
		}
		metrics.BlocksProcessed.WithLabelValues("encode").Inc()
		if done {
			total += int64(blockSize)
			return total, nil
		}
		total += int64(c.codec.DataBlockSize())
	}
}

// Decode reconstructs the original stream from K readers, given in
// shard-index order skipping the shards named in excludedShards (which
// must list exactly N-K distinct indices in [0,N)), and writes it to w.
// Returns the exact byte count written.
func (c *Coder) Decode(excludedShards []int, readers []io.Reader, w io.Writer) (int64, error) {
	if len(excludedShards) != c.N-c.K {
		return 0, codeerr.NewValueError("excludedShards", len(excludedShards), "exactly N-K indices")
	}
	if len(readers) != c.K {
		return 0, codeerr.NewValueError("readers", len(readers), "exactly K readers")
	}
	seen := make(map[int]bool, len(excludedShards))
	for _, idx := range excludedShards {
		if idx < 0 || idx >= c.N {
			return 0, codeerr.NewValueError("excluded shard index", idx, "in [0,N)")
		}
		if seen[idx] {
			return 0, codeerr.NewValueError("excluded shard index", idx, "distinct")
		}
		seen[idx] = true
	}

	sub, err := c.encoder.Submatrix(excludedShards, nil)
	if err != nil {
		return 0, err
	}
	decoder, err := sub.Invert()
	if err != nil {
		return 0, err
	}
	decoderBin, err := decoder.ToBinary()
	if err != nil {
		return 0, err
	}

	peekers := make([]*streamio.Peeker, len(readers))
	for i, r := range readers {
		peekers[i] = streamio.NewPeeker(r)
	}

	var total int64
	for {
		code, done, err := c.codec.ReadCodeBlock(peekers)
		if err != nil {
			return 0, err
		}
		data := applyBinaryMatrix(decoderBin, code)
		if done {
			blockSize := c.codec.FinalBlockSize(data)
			if err := c.codec.WriteDataBlock(w, data, true, blockSize); err != nil {
				return 0, err
			}
			metrics.BlocksProcessed.WithLabelValues("decode").Inc()
			total += int64(blockSize)
			return total, nil
		}
		if err := c.codec.WriteDataBlock(w, data, false, 0); err != nil {
			return 0, err
		}
		metrics.BlocksProcessed.WithLabelValues("decode").Inc()
		total += int64(c.codec.DataBlockSize())
	}
}
