package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/parser"
	"github.com/Ramsey-B/fern/pkg/processor"
	"github.com/Ramsey-B/fern/pkg/scraper"
	"github.com/spf13/cobra"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <type> <file>...",
		Short: "Parse saved page documents offline",
		Long: "Parse saved page documents offline and print the records as JSON.\n\n" +
			"A file is either a decoded JSON document or a saved HTML page carrying one.\n" +
			"Types: " + strings.Join(documentTypeNames(), ", "),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := ctx.setup(cmd.Context())
			if err != nil {
				return err
			}

			docType, err := parser.ParseDocumentType(args[0])
			if err != nil {
				return err
			}

			docs := make([]*kafka.RawDocument, 0, len(args)-1)
			for _, path := range args[1:] {
				doc, err := readDocument(path, docType, cfg.Locale)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
			}

			svc, err := ctx.offline(cmd.Context())
			if err != nil {
				return err
			}
			proc := processor.NewProcessor(processor.ProcessorConfig{
				WorkerCount:    cfg.ProcessorWorkerCount,
				ProcessTimeout: 0,
			}, svc, nil, logger)

			records := proc.ProcessAll(cmd.Context(), docs)

			if len(records) == 1 {
				if records[0].Error != nil {
					return fmt.Errorf("%s: %s", args[1], records[0].Error.Message)
				}
				return writeJSON(cmd, records[0].Record)
			}

			if err := writeJSON(cmd, records); err != nil {
				return err
			}
			return failedCount(records)
		},
	}
}

func documentTypeNames() []string {
	names := make([]string, 0, len(parser.DocumentTypes))
	for _, docType := range parser.DocumentTypes {
		names = append(names, string(docType))
	}
	return names
}

// readDocument loads a JSON document, or extracts the page state of a saved
// HTML page.
func readDocument(path string, docType parser.DocumentType, locale string) (*kafka.RawDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var document any
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("<")) {
		document, err = scraper.ExtractNextDataBytes(raw)
	} else {
		document, err = scraper.Decode(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	payload, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &kafka.RawDocument{
		ID:        filepath.Base(path),
		Type:      string(docType),
		Locale:    locale,
		SourceURL: path,
		Payload:   payload,
	}, nil
}

func failedCount(records []*kafka.ParsedRecord) error {
	failed := 0
	for _, record := range records {
		if record.Error != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed to parse", failed, len(records))
	}
	return nil
}
