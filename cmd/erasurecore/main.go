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

// Command erasurecore is the CLI front end around the coder package: it
// owns file I/O, flag parsing, logging, and metrics, and is the sole
// caller of internal/coder's public API. None of the erasure-coding logic lives
// here.
package main

import (
	"fmt"
	"os"

	"github.com/minio/cli"

	"github.com/minio/erasurecore/internal/corelog"
)

var globalTrace = false

func init() {
	cli.HelpFlag = cli.BoolFlag{
		Name:  "help, h",
		Usage: "show help",
	}
}

func registerApp() *cli.App {
	app := cli.NewApp()
	app.Name = "erasurecore"
	app.Author = "Minio.io"
	app.Usage = "Systematic MDS erasure coding over GF(2^n)."
	app.Version = "0.1.0"
	app.Commands = commands
	app.Flags = flags
	app.CustomAppHelpTemplate = `NAME:
  {{.Name}} - {{.Usage}}

USAGE:
  {{.Name}} {{if .Flags}}[global flags] {{end}}command [command flags] [arguments...]

COMMANDS:
  {{range .Commands}}{{join .Names ", "}}{{ "\t" }}{{.Usage}}
  {{end}}
`
	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("debug") {
			globalTrace = true
			corelog.SetLevel("debug")
		}
		return nil
	}
	return app
}

func main() {
	app := registerApp()
	app.Flags = append(app.Flags, cli.BoolFlag{Name: "debug", Usage: "enable stack traces on error"})
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
