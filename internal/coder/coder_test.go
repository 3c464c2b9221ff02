package coder

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func combinations(n, k int) [][]int {
	var out [][]int
	var choose func(start int, chosen []int)
	choose = func(start int, chosen []int) {
		if len(chosen) == k {
			cp := append([]int(nil), chosen...)
			out = append(out, cp)
			return
		}
		for i := start; i < n; i++ {
			choose(i+1, append(chosen, i))
		}
	}
	choose(0, nil)
	return out
}

// S6: (N=5,K=3,w=8) end-to-end round trip over every excluded-pair choice.
func TestS6EndToEnd(t *testing.T) {
	const msg = "The quick brown fox jumps over the lazy dog."
	if len(msg) != 44 {
		t.Fatalf("fixture length = %d, want 44", len(msg))
	}

	c, err := New(5, 3, 8)
	if err != nil {
		t.Fatalf("New(5,3,8): %v", err)
	}

	shardBufs := make([]*bytes.Buffer, 5)
	writers := make([]io.Writer, 5)
	for i := range shardBufs {
		shardBufs[i] = &bytes.Buffer{}
		writers[i] = shardBufs[i]
	}

	n, err := c.Encode(bytes.NewReader([]byte(msg)), writers)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if n != 44 {
		t.Fatalf("Encode returned %d, want 44", n)
	}

	for _, excluded := range combinations(5, 2) {
		excludedSet := map[int]bool{excluded[0]: true, excluded[1]: true}
		var readers []io.Reader
		for shard := 0; shard < 5; shard++ {
			if excludedSet[shard] {
				continue
			}
			readers = append(readers, bytes.NewReader(shardBufs[shard].Bytes()))
		}

		var out bytes.Buffer
		written, err := c.Decode(excluded, readers, &out)
		if err != nil {
			t.Fatalf("excluding %v: Decode: %v", excluded, err)
		}
		if written != 44 {
			t.Fatalf("excluding %v: Decode returned %d, want 44", excluded, written)
		}
		if diff := cmp.Diff(msg, out.String()); diff != "" {
			t.Fatalf("excluding %v: Decode mismatch (-want +got):\n%s", excluded, diff)
		}
	}
}

// Round-trip and byte-count identity (spec properties 5-6) over an empty
// payload, a one-byte payload, and a larger payload spanning several full
// blocks plus a short final one, for a handful of (N,K,w) configurations
// and every exclusion choice.
func TestRoundTripAndByteCountAcrossConfigs(t *testing.T) {
	payloads := [][]byte{
		[]byte(""),
		[]byte("x"),
		bytes.Repeat([]byte("erasure-coded-stream-data"), 50),
	}
	configs := []struct{ n, k, w int }{
		{3, 2, 1},
		{5, 3, 4},
		{6, 4, 2},
		{4, 1, 2}, // K=1: exercises the 1x1 cofactor/invert edge case
	}

	for _, cfg := range configs {
		c, err := New(cfg.n, cfg.k, cfg.w)
		if err != nil {
			t.Fatalf("New(%d,%d,%d): %v", cfg.n, cfg.k, cfg.w, err)
		}
		for _, payload := range payloads {
			shardBufs := make([]*bytes.Buffer, cfg.n)
			writers := make([]io.Writer, cfg.n)
			for i := range shardBufs {
				shardBufs[i] = &bytes.Buffer{}
				writers[i] = shardBufs[i]
			}
			written, err := c.Encode(bytes.NewReader(payload), writers)
			if err != nil {
				t.Fatalf("cfg %+v: Encode: %v", cfg, err)
			}
			if written != int64(len(payload)) {
				t.Fatalf("cfg %+v: Encode returned %d, want %d", cfg, written, len(payload))
			}

			for _, excluded := range combinations(cfg.n, cfg.n-cfg.k) {
				excludedSet := make(map[int]bool, len(excluded))
				for _, e := range excluded {
					excludedSet[e] = true
				}
				var readers []io.Reader
				for shard := 0; shard < cfg.n; shard++ {
					if excludedSet[shard] {
						continue
					}
					readers = append(readers, bytes.NewReader(shardBufs[shard].Bytes()))
				}
				var out bytes.Buffer
				n, err := c.Decode(excluded, readers, &out)
				if err != nil {
					t.Fatalf("cfg %+v excluding %v: Decode: %v", cfg, excluded, err)
				}
				if n != int64(len(payload)) {
					t.Fatalf("cfg %+v excluding %v: Decode returned %d, want %d", cfg, excluded, n, len(payload))
				}
				if diff := cmp.Diff(string(payload), out.String()); diff != "" {
					t.Fatalf("cfg %+v excluding %v: Decode mismatch (-want +got):\n%s", cfg, excluded, diff)
				}
			}
		}
	}
}

func TestNewRejectsInvalidK(t *testing.T) {
	if _, err := New(3, 0, 1); err == nil {
		t.Fatal("New: expected error for K=0")
	}
	if _, err := New(3, 4, 1); err == nil {
		t.Fatal("New: expected error for K>N")
	}
}

func TestNewRejectsFieldDegreeOverflow(t *testing.T) {
	// N+K would require a field degree > 7.
	if _, err := New(200, 100, 1); err == nil {
		t.Fatal("New: expected error for excessive N+K")
	}
}
