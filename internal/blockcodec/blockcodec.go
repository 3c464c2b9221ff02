// Package blockcodec packs and unpacks the word-level blocks the coder
// package operates on: reading a data block from the source byte stream
// (with the end-of-stream length tag folded into the last data word),
// and reading/writing code blocks across a shard's readers and writers.
package blockcodec

import (
	"encoding/binary"
	"io"

	"github.com/minio/erasurecore/internal/codeerr"
	"github.com/minio/erasurecore/internal/streamio"
)

// supportedWidths enumerates the four word widths the core is
// instantiated for; words are always big-endian.
var supportedWidths = map[int]bool{1: true, 2: true, 4: true, 8: true}

// Codec packs W-byte big-endian words into data and code blocks for a
// coder configured with field degree Degree and K data shards.
type Codec struct {
	W      int // bytes per word
	Degree int // field degree n
	K      int // data shards
}

// New validates (w, degree, k) and rejects configurations whose data
// block would not fit the one-byte end-of-stream length tag.
func New(w, degree, k int) (*Codec, error) {
	if !supportedWidths[w] {
		return nil, codeerr.NewValueError("w", w, "one of {1,2,4,8}")
	}
	if degree < 1 || degree > 7 {
		return nil, codeerr.NewValueError("degree", degree, "in [1,7]")
	}
	if k < 1 {
		return nil, codeerr.NewValueError("k", k, "> 0")
	}
	c := &Codec{W: w, Degree: degree, K: k}
	if c.DataBlockSize() > 255 {
		return nil, codeerr.NewValueError("data block size", c.DataBlockSize(), "<= 255 (reduce w, K, or the shard count)")
	}
	return c, nil
}

// ChunkSize is w*degree, the number of bytes one field-element slot
// contributes per shard per block.
func (c *Codec) ChunkSize() int { return c.W * c.Degree }

// DataBlockSize is the number of bytes read per data block: ChunkSize*K.
func (c *Codec) DataBlockSize() int { return c.ChunkSize() * c.K }

// DataWords is the number of w-byte words in one data block.
func (c *Codec) DataWords() int { return c.Degree * c.K }

func wordToBytes(word, w int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(word))
	return buf[8-w:]
}

func bytesToWord(buf []byte) int {
	padded := make([]byte, 8)
	copy(padded[8-len(buf):], buf)
	return int(binary.BigEndian.Uint64(padded))
}

// ReadDataBlock reads DataWords words of W bytes each from r, building the
// data vector the encoder multiplies by the binary-expanded Cauchy
// matrix. When r runs short mid-word, the word's last byte is overwritten
// with the running byte count (truncated to a byte, which DataBlockSize
// <= 255 guarantees is lossless) so the decoder can recover the exact
// trailing length. done reports whether this was the final, partial
// block.
func (c *Codec) ReadDataBlock(r io.Reader) (words []int, blockSize int, done bool, err error) {
	words = make([]int, c.DataWords())
	for i := range words {
		buf := make([]byte, c.W)
		n, rerr := io.ReadFull(r, buf)
		if rerr != nil && rerr != io.EOF && rerr != io.ErrUnexpectedEOF {
			return nil, 0, false, codeerr.WrapIO("blockcodec: read data word", rerr)
		}
		blockSize += n
		if n < c.W {
			buf[c.W-1] = byte(blockSize)
		}
		words[i] = bytesToWord(buf)
	}
	done = blockSize < c.DataBlockSize()
	return words, blockSize, done, nil
}

// WriteCodeBlock distributes one code block's words across writers, one
// per shard, Degree consecutive words per writer.
func (c *Codec) WriteCodeBlock(writers []io.Writer, words []int) error {
	if len(writers)*c.Degree != len(words) {
		return codeerr.NewValueError("code block shape", len(words), "len(writers)*degree words")
	}
	for s, w := range writers {
		for j := 0; j < c.Degree; j++ {
			buf := wordToBytes(words[s*c.Degree+j], c.W)
			if _, err := w.Write(buf); err != nil {
				return codeerr.WrapIO("blockcodec: write code word", err)
			}
		}
	}
	return nil
}

// ReadCodeBlock reads Degree words from each of readers, in reader order,
// returning done=true when the representative peeker (conventionally the
// last reader, which owns the last word of the block) reports no further
// bytes available after this block.
func (c *Codec) ReadCodeBlock(readers []*streamio.Peeker) (words []int, done bool, err error) {
	words = make([]int, len(readers)*c.Degree)
	for s, r := range readers {
		for j := 0; j < c.Degree; j++ {
			buf := make([]byte, c.W)
			if _, rerr := io.ReadFull(r, buf); rerr != nil {
				return nil, false, codeerr.WrapIO("blockcodec: read code word", rerr)
			}
			words[s*c.Degree+j] = bytesToWord(buf)
		}
	}
	if len(readers) == 0 {
		return words, true, nil
	}
	more, err := readers[len(readers)-1].HasMore()
	if err != nil {
		return nil, false, codeerr.WrapIO("blockcodec: peek shard", err)
	}
	return words, !more, nil
}

// WriteDataBlock writes the reconstructed data block to w. When final is
// true, only the first blockSize bytes (read back from the last data
// word's tag byte by the caller) are emitted; otherwise the full
// DataBlockSize bytes are written.
func (c *Codec) WriteDataBlock(w io.Writer, words []int, final bool, blockSize int) error {
	buf := make([]byte, 0, c.DataBlockSize())
	for _, word := range words {
		buf = append(buf, wordToBytes(word, c.W)...)
	}
	if final {
		if blockSize > c.DataBlockSize() {
			return codeerr.NewValueError("final block size", blockSize, "<= data block size")
		}
		buf = buf[:blockSize]
	}
	if _, err := w.Write(buf); err != nil {
		return codeerr.WrapIO("blockcodec: write data block", err)
	}
	return nil
}

// FinalBlockSize reads the length tag back out of the last byte of the
// last word in a reconstructed data block.
func (c *Codec) FinalBlockSize(words []int) int {
	last := words[len(words)-1]
	return last & 0xff
}
