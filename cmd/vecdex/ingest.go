package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chuimeng/vecdex/internal/config"
	"github.com/chuimeng/vecdex/internal/service"
	"github.com/chuimeng/vecdex/pkg/logger"
)

var (
	ingestFile     string
	ingestDocID    string
	ingestFileHash string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a document into the vector index",
	Long: `Loads the document, normalizes and chunks its text, embeds every chunk
and upserts the result into the configured vector store collection.
When --file-hash is omitted, the SHA-256 of the file is computed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		logger.Init(logger.ParseLevel(cfg.Logger.Level))
		log := logger.New("vecdex")

		ctx := context.Background()
		svc, err := service.New(ctx, cfg, log)
		if err != nil {
			return err
		}

		result, err := svc.Ingest(ctx, ingestFile, ingestDocID, ingestFileHash)
		if err != nil {
			return err
		}

		fmt.Printf("Successfully ingested %q (doc_id=%s, file_hash=%s, chunks=%d)\n",
			result.Identity.SourceFile, result.Identity.DocID, result.Identity.FileHash, result.ChunkCount)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFile, "file", "", "path to the document file to ingest")
	ingestCmd.Flags().StringVar(&ingestDocID, "doc-id", "", "document ID used for file-scoped retrieval")
	ingestCmd.Flags().StringVar(&ingestFileHash, "file-hash", "", "SHA-256 hash of the document file (computed when omitted)")
	_ = ingestCmd.MarkFlagRequired("file")
	_ = ingestCmd.MarkFlagRequired("doc-id")

	rootCmd.AddCommand(ingestCmd)
}
