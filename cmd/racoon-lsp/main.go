// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tu10ng/racoon/internal/lsp"
)

const lsName = "racoon" // Name identifier for the language server

var handler protocol.Handler // Protocol handler instance (wired up below)

func main() {
	verbosity := flag.Int("verbosity", 1, "log verbosity (negative disables logging)")
	logFile := flag.String("log-file", "", "write logs to this file instead of stderr")
	flag.Parse()

	var logPath *string
	if *logFile != "" {
		logPath = logFile
	}
	commonlog.Configure(*verbosity, logPath)

	racoonHandler := lsp.NewRacoonHandler()

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     racoonHandler.Initialize,
		Initialized:                    racoonHandler.Initialized,
		Shutdown:                       racoonHandler.Shutdown,
		SetTrace:                       racoonHandler.SetTrace,
		TextDocumentDidOpen:            racoonHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           racoonHandler.TextDocumentDidClose,
		TextDocumentDidChange:          racoonHandler.TextDocumentDidChange,
		TextDocumentCompletion:         racoonHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: racoonHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting racoon LSP server...")

	// Editors talk to the server over stdin/stdout
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting racoon LSP server:", err)
		os.Exit(1)
	}
}
