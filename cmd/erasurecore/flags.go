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

import "github.com/minio/cli"

// Collection of erasurecore flags currently supported, shared across
// commands.
var flags = []cli.Flag{}

var (
	nFlag = cli.IntFlag{
		Name:  "n",
		Usage: "total shard count",
	}

	kFlag = cli.IntFlag{
		Name:  "k",
		Usage: "data shard count",
	}

	wFlag = cli.IntFlag{
		Name:  "w",
		Value: 1,
		Usage: "word width in bytes: one of {1,2,4,8}",
	}

	profileFlag = cli.StringFlag{
		Name:  "profile",
		Usage: "named (N,K,w) preset from --profile-file, overrides -n/-k/-w",
	}

	profileFileFlag = cli.StringFlag{
		Name:  "profile-file",
		Usage: "path to a YAML file of named (N,K,w) presets",
	}

	shardDirFlag = cli.StringFlag{
		Name:  "shard-dir",
		Value: ".",
		Usage: "directory holding (or to hold) shard files named shard.0 .. shard.N-1",
	}

	excludeFlag = cli.StringFlag{
		Name:  "exclude",
		Usage: "comma-separated shard indices to treat as missing, e.g. \"1,3\"",
	}

	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "if set, serve Prometheus metrics at this address (e.g. :9401) for the duration of the call",
	}
)
