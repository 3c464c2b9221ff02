/*
 * Minio Cloud Storage, (C) 2015, 2016 Minio, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/minio/cli"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minio/erasurecore/internal/codeerr"
	"github.com/minio/erasurecore/internal/coder"
	"github.com/minio/erasurecore/internal/corelog"
	"github.com/minio/erasurecore/internal/field"
	"github.com/minio/erasurecore/internal/fieldmatrix"
	"github.com/minio/erasurecore/internal/metrics"
	"github.com/minio/erasurecore/internal/profile"
)

// fieldMatrixField rebuilds the field.Field for a degree already
// validated by coder.New, purely for the inspect command's matrix
// rendering; the coder itself keeps its field private.
func fieldMatrixField(degree int) (*field.Field, error) {
	return field.New(degree)
}

var commands = []cli.Command{
	encodeCmd,
	decodeCmd,
	inspectCmd,
}

var encodeCmd = cli.Command{
	Name:        "encode",
	Description: "Encode stdin into N shard files",
	Flags:       []cli.Flag{nFlag, kFlag, wFlag, profileFlag, profileFileFlag, shardDirFlag, metricsAddrFlag},
	Action:      runEncode,
	CustomHelpTemplate: `NAME:
  erasurecore {{.Name}} - {{.Description}}

USAGE:
  erasurecore {{.Name}} -n N -k K -w W --shard-dir DIR

EXAMPLES:
  1. Encode a file into 5 shards, 3 of which are data shards
      $ erasurecore {{.Name}} -n 5 -k 3 -w 8 --shard-dir ./shards < input.bin

`,
}

var decodeCmd = cli.Command{
	Name:        "decode",
	Description: "Decode shard files to stdout",
	Flags:       []cli.Flag{nFlag, kFlag, wFlag, profileFlag, profileFileFlag, shardDirFlag, excludeFlag, metricsAddrFlag},
	Action:      runDecode,
	CustomHelpTemplate: `NAME:
  erasurecore {{.Name}} - {{.Description}}

USAGE:
  erasurecore {{.Name}} -n N -k K -w W --shard-dir DIR --exclude i,j

EXAMPLES:
  1. Reconstruct a stream missing shards 1 and 3
      $ erasurecore {{.Name}} -n 5 -k 3 -w 8 --shard-dir ./shards --exclude 1,3 > output.bin

`,
}

var inspectCmd = cli.Command{
	Name:        "inspect",
	Description: "Print the derived sizes and Cauchy encoder matrix for a configuration",
	Flags:       []cli.Flag{nFlag, kFlag, wFlag, profileFlag, profileFileFlag},
	Action:      runInspect,
	CustomHelpTemplate: `NAME:
  erasurecore {{.Name}} - {{.Description}}

USAGE:
  erasurecore {{.Name}} -n N -k K -w W

`,
}

// resolveConfig reads N/K/w either from a named --profile (looked up in
// --profile-file) or directly from -n/-k/-w.
func resolveConfig(c *cli.Context) (n, k, w int, err error) {
	if name := c.String("profile"); name != "" {
		path := c.String("profile-file")
		if path == "" {
			return 0, 0, 0, fmt.Errorf("--profile requires --profile-file")
		}
		set, err := profile.Load(path)
		if err != nil {
			return 0, 0, 0, err
		}
		p, ok := set.Find(name)
		if !ok {
			return 0, 0, 0, fmt.Errorf("no profile named %q in %s", name, path)
		}
		return p.N, p.K, p.W, nil
	}
	return c.Int("n"), c.Int("k"), c.Int("w"), nil
}

func parseExclude(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --exclude value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func shardPath(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf("shard.%d", i))
}

// serveMetrics starts a background Prometheus endpoint for the duration
// of one encode/decode call when --metrics-addr is set.
func serveMetrics(addr string) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			corelog.ErrorIf(err, "metrics server exited")
		}
	}()
	return func() { srv.Close() }
}

func runEncode(c *cli.Context) {
	n, k, w, err := resolveConfig(c)
	corelog.FatalIf(err, "resolve configuration")
	reqID := uuid.New().String()
	stop := serveMetrics(c.String("metrics-addr"))
	defer stop()

	cdr, err := coder.New(n, k, w)
	if err != nil {
		metrics.Failures.WithLabelValues("encode", "ValueError").Inc()
		corelog.FatalIf(err, "build coder")
	}

	dir := c.String("shard-dir")
	corelog.FatalIf(os.MkdirAll(dir, 0o755), "create shard directory")
	writers := make([]io.Writer, n)
	files := make([]*os.File, n)
	for i := 0; i < n; i++ {
		f, err := os.Create(shardPath(dir, i))
		corelog.FatalIf(err, "create shard file")
		files[i] = f
		writers[i] = f
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	written, err := cdr.Encode(os.Stdin, writers)
	if err != nil {
		metrics.Failures.WithLabelValues("encode", "IOError").Inc()
		corelog.FatalIf(err, "encode failed request=%s", reqID)
	}
	metrics.BytesProcessed.WithLabelValues("encode").Add(float64(written))
	corelog.WithFields(corelog.Fields{"request": reqID, "bytes": written}).Info("encode complete")
}

func runDecode(c *cli.Context) {
	n, k, w, err := resolveConfig(c)
	corelog.FatalIf(err, "resolve configuration")
	excluded, err := parseExclude(c.String("exclude"))
	corelog.FatalIf(err, "parse --exclude")
	reqID := uuid.New().String()
	stop := serveMetrics(c.String("metrics-addr"))
	defer stop()

	cdr, err := coder.New(n, k, w)
	if err != nil {
		metrics.Failures.WithLabelValues("decode", "ValueError").Inc()
		corelog.FatalIf(err, "build coder")
	}

	excludedSet := make(map[int]bool, len(excluded))
	for _, e := range excluded {
		excludedSet[e] = true
	}

	dir := c.String("shard-dir")
	var readers []io.Reader
	var files []*os.File
	for i := 0; i < n; i++ {
		if excludedSet[i] {
			continue
		}
		f, err := os.Open(shardPath(dir, i))
		corelog.FatalIf(err, "open shard file")
		files = append(files, f)
		readers = append(readers, f)
	}
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	written, err := cdr.Decode(excluded, readers, os.Stdout)
	if err != nil {
		kind := "IOError"
		var ve *codeerr.ValueError
		var ni *codeerr.NoInverse
		switch {
		case errors.As(err, &ve):
			kind = "ValueError"
		case errors.As(err, &ni):
			kind = "NoInverse"
		}
		metrics.Failures.WithLabelValues("decode", kind).Inc()
		corelog.FatalIf(err, "decode failed request=%s", reqID)
	}
	metrics.BytesProcessed.WithLabelValues("decode").Add(float64(written))
	corelog.WithFields(corelog.Fields{"request": reqID, "bytes": written}).Info("decode complete")
}

func runInspect(c *cli.Context) {
	n, k, w, err := resolveConfig(c)
	corelog.FatalIf(err, "resolve configuration")
	_, err = coder.New(n, k, w)
	corelog.FatalIf(err, "build coder")

	degree := 2
	for (1 << uint(degree)) < n+k {
		degree++
	}
	chunkSize := w * degree
	dataBlockSize := chunkSize * k
	codeBlockSize := chunkSize * n

	fmt.Printf("N=%d K=%d w=%d field_degree=%d\n", n, k, w, degree)
	fmt.Printf("chunk_size=%s data_block_size=%s code_block_size=%s\n",
		humanize.Bytes(uint64(chunkSize)), humanize.Bytes(uint64(dataBlockSize)), humanize.Bytes(uint64(codeBlockSize)))

	f, err := fieldMatrixField(degree)
	corelog.FatalIf(err, "rebuild field")
	m, err := fieldmatrix.New(n, k, f)
	corelog.FatalIf(err, "rebuild matrix")
	corelog.FatalIf(m.SetCauchy(), "set cauchy")
	fmt.Println("encoder:", m)
}
