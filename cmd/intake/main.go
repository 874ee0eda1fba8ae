// Command intake processes documents from the local filesystem and prints
// one JSON record per file. It needs no queue or object store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/feichai0017/document-intake/internal/pipeline"
	"github.com/feichai0017/document-intake/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: intake <file> [<file> ...]")
		os.Exit(2)
	}

	log, err := logger.NewLogger(
		logger.WithLevel("warn"),
		logger.WithEncoding("json"),
		logger.WithOutputPaths([]string{"stderr"}),
	)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	processor, err := pipeline.GetProcessor(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize pipeline: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	ctx := context.Background()
	for _, path := range os.Args[1:] {
		rec := processor.Process(ctx, path)
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode record for %s: %v\n", path, err)
			os.Exit(1)
		}
	}
}
