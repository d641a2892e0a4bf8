// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package logging

import (
	"io"
	"os"

	cfg "github.com/dusk-network/dusk-punchcard/pkg/config"
	log "github.com/sirupsen/logrus"
)

// InitLog applies the logger level and format from the loaded configuration
// and directs all output to w.
func InitLog(w io.Writer) {
	// apply logger level from configurations
	SetToLevel(cfg.Get().Logger.Level)
	SetFormat(cfg.Get().Logger.Format)
	log.SetOutput(w)
}

// SetToLevel parses l and applies it. An unknown level falls back to trace.
func SetToLevel(l string) {
	level, err := log.ParseLevel(l)
	if err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(log.TraceLevel)
		log.Warnf("Parse logger level from config err: %v", err)
	}
}

// SetFormat switches to the JSON formatter for "json" and to the text
// formatter otherwise.
func SetFormat(f string) {
	if f == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{})
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// OpenOutput returns the writer for a configured output: stdout for
// "stdout" or an empty string, otherwise the file <output>.log.
func OpenOutput(output string) (io.WriteCloser, error) {
	if output == "" || output == "stdout" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(output + ".log")
}
