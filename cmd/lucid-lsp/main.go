// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"lucid/internal/config"
	"lucid/internal/lsp"
)

const lsName = "lucid"

var handler protocol.Handler

func main() {
	verbose := flag.Bool("verbose", false, "log protocol activity")
	debug := flag.Bool("debug", false, "log at debug level, including glsp internals")
	flag.Parse()

	cfg, err := config.Load(context.Background(), config.DefaultName)
	if err != nil {
		log.Println("config:", err)
		cfg = config.Default()
	}

	verbosity := cfg.LSP.LogLevel
	if *verbose && verbosity < 1 {
		verbosity = 1
	}
	if *debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	lucidHandler := lsp.NewLucidHandler()

	handler = protocol.Handler{
		Initialize:                     lucidHandler.Initialize,
		Initialized:                    lucidHandler.Initialized,
		Shutdown:                       lucidHandler.Shutdown,
		SetTrace:                       lucidHandler.SetTrace,
		TextDocumentDidOpen:            lucidHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           lucidHandler.TextDocumentDidClose,
		TextDocumentDidChange:          lucidHandler.TextDocumentDidChange,
		TextDocumentCompletion:         lucidHandler.TextDocumentCompletion,
		TextDocumentDocumentSymbol:     lucidHandler.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: lucidHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, verbosity >= 2)

	log.Println("Starting Lucid LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Lucid LSP server:", err)
		os.Exit(1)
	}
}
