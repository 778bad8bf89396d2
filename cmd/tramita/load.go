package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/tramita"
	"github.com/aretw0/tramita/internal/dto"
	"github.com/aretw0/tramita/internal/logging"
	"github.com/aretw0/tramita/pkg/adapters/memory"
	"github.com/aretw0/tramita/pkg/domain"
)

// bundle is the parsed metadata file. Besides the snapshot collections the
// file may carry a "document" and a "history" section so a single file can
// drive the timeline and graph commands.
type bundle struct {
	raw      map[string]any
	snapshot *domain.Snapshot
}

func loadBundle(cmd *cobra.Command) (*bundle, error) {
	path, _ := cmd.Flags().GetString("metadata")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata bundle: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse metadata bundle: %w", err)
	}

	snap, err := dto.Snapshot(raw)
	if err != nil {
		return nil, fmt.Errorf("decode metadata bundle: %w", err)
	}

	return &bundle{raw: raw, snapshot: snap}, nil
}

// Document returns the document section, if the bundle carries one.
func (b *bundle) Document() (domain.Document, bool, error) {
	raw, ok := b.raw["document"]
	if !ok || raw == nil {
		return domain.Document{}, false, nil
	}
	doc, err := dto.Document(raw)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("decode document: %w", err)
	}
	return doc, true, nil
}

// History returns the execution history section, empty when absent.
func (b *bundle) History() ([]domain.ExecutionRecord, error) {
	raw, ok := b.raw["history"]
	if !ok || raw == nil {
		return nil, nil
	}
	records, err := dto.History(raw)
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return records, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.ParseLevel(level))
}

func newEngine(cmd *cobra.Command, opts ...tramita.Option) (*tramita.Engine, *bundle, error) {
	b, err := loadBundle(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]tramita.Option{tramita.WithLogger(newLogger(cmd))}, opts...)
	engine, err := tramita.New(memory.NewSource(b.snapshot), opts...)
	if err != nil {
		return nil, nil, err
	}
	return engine, b, nil
}
