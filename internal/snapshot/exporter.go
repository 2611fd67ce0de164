package snapshot

import (
	"context"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"scad/internal/providers"
	"scad/internal/snapshot/interfaces"
	"scad/internal/store"
	"scad/internal/structures"
)

// Exporter dumps the full analytics subtree to a zstd-compressed JSON file.
// The export is an operator backup of the remote store's counters, not a
// replay source; nothing in this process reads it back.
type Exporter struct {
	store      store.KeyedStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	root       string
}

func NewExporter(conf *structures.Config, st store.KeyedStore, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Exporter {
	return &Exporter{
		store:      st,
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
		root:       conf.Store.RootPath,
	}
}

func (e *Exporter) Export(ctx context.Context, fileName string) error {
	start := time.Now()

	tree, err := e.store.Get(ctx, e.root)
	if err != nil {
		return err
	}
	if tree == nil {
		tree = map[string]any{}
	}

	jsonData, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	data, err := e.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		os.Remove(tmpFile)
		return err
	}

	e.metrics.ObserveSnapshotDuration(time.Since(start))
	return nil
}
