package cmd

import (
	"bytes"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v2"

	"github.com/contentdepot/depot/pkg/core"
	"github.com/contentdepot/depot/pkg/dlogger"
	"github.com/contentdepot/depot/pkg/metrics"
	"github.com/contentdepot/depot/pkg/store"
	"github.com/contentdepot/depot/pkg/store/bdgr"
	"github.com/contentdepot/depot/pkg/store/localfs"
)

// openStore opens the metadata store configured by flags. The returned
// closer must be deferred by the caller.
func openStore() (store.Store, func()) {
	var meta store.Store
	switch depotFlags.root.backend {
	case "badger":
		meta = bdgr.New(depotFlags.root.storePath)
	case "localfs":
		meta = localfs.New(afero.NewBasePathFs(afero.NewOsFs(), filepath.Clean(depotFlags.root.storePath)))
	default:
		wrapFatalln("unsupported store backend: "+depotFlags.root.backend, nil)
	}
	if err := meta.Initialize(); err != nil {
		wrapFatalln("initialize metadata store", err)
	}
	return meta, func() {
		if err := meta.Close(); err != nil {
			log.Println("closing metadata store:", err)
		}
	}
}

// cliOptions assembles the core options shared by all commands
func cliOptions() []core.Option {
	opts := []core.Option{
		core.WithLogger(mustGetLogger()),
	}
	if depotFlags.root.metrics {
		metrics.Init(metrics.WithZapExporter(mustGetLogger()))
		opts = append(opts, core.WithMetrics(true))
	}
	return opts
}

func mustGetLogger() *zap.Logger {
	logger, err := dlogger.GetLogger(depotFlags.root.logLevel)
	if err != nil {
		wrapFatalln("get logger", err)
	}
	return logger
}

// printYAML renders command output as a YAML document
func printYAML(v interface{}) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	if err := encoder.Encode(v); err != nil {
		wrapFatalln("encode output", err)
	}
	_ = encoder.Close()
	log.Println(buf.String())
}
