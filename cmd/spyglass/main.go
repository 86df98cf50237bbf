package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"

	"github.com/chazu/spyglass/pkg/layout"
	"github.com/chazu/spyglass/pkg/resource"
	"github.com/chazu/spyglass/pkg/topology"
)

// Config holds the command-line configuration
type Config struct {
	SnapshotPath string
	ClusterName  string
	Namespace    string
	Strategy     string
	Seed         int64
	SeedSet      bool
	OutputPath   string
	Verbose      bool
}

func parseFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.SnapshotPath, "snapshot", "", "Path to a YAML or JSON list of resource objects.")
	flag.StringVar(&cfg.ClusterName, "cluster", "", "Cluster name recorded in graph metadata.")
	flag.StringVar(&cfg.Namespace, "namespace", "", "Namespace filter the snapshot was taken under, recorded in metadata.")
	flag.StringVar(&cfg.Strategy, "layout", string(layout.StrategyHierarchical), "Layout strategy: hierarchical, force, circular, or grid.")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Seed for the force-directed random source; omit for wall-clock seeding.")
	flag.StringVar(&cfg.OutputPath, "o", "", "Output path for the positioned graph JSON; defaults to stdout.")
	flag.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging.")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.SeedSet = true
		}
	})
	return cfg
}

func main() {
	cfg := parseFlags()

	zapCfg := zap.NewProductionConfig()
	if cfg.Verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLog, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLog.Sync() }()
	log := zapr.NewLogger(zapLog)

	if cfg.SnapshotPath == "" {
		log.Error(fmt.Errorf("missing -snapshot"), "a resource snapshot file is required")
		os.Exit(1)
	}
	if cfg.ClusterName == "" {
		log.Error(fmt.Errorf("missing -cluster"), "a cluster name is required")
		os.Exit(1)
	}

	objs, err := readSnapshot(cfg.SnapshotPath)
	if err != nil {
		log.Error(err, "unable to read snapshot", "path", cfg.SnapshotPath)
		os.Exit(1)
	}

	resources := resource.FromUnstructured(objs)
	builder := topology.NewBuilder(topology.WithLogger(log))
	g := builder.Build(resources, cfg.ClusterName, topology.WithNamespace(cfg.Namespace))
	g.SetHash()

	opts := layout.DefaultOptions()
	if cfg.SeedSet {
		opts.Force.Seed = &cfg.Seed
	}

	positioned, err := layout.Apply(g.Nodes, g.Edges, layout.Strategy(cfg.Strategy), opts)
	if err != nil {
		log.Error(err, "layout failed", "strategy", cfg.Strategy)
		os.Exit(1)
	}
	g.Nodes = positioned

	out, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		log.Error(err, "unable to encode graph")
		os.Exit(1)
	}
	out = append(out, '\n')

	if cfg.OutputPath == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Error(err, "unable to write graph")
			os.Exit(1)
		}
		return
	}
	if err := os.WriteFile(cfg.OutputPath, out, 0o644); err != nil {
		log.Error(err, "unable to write graph", "path", cfg.OutputPath)
		os.Exit(1)
	}
	log.Info("wrote positioned graph",
		"path", cfg.OutputPath,
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"strategy", cfg.Strategy)
}

// readSnapshot decodes a YAML or JSON list of raw objects
func readSnapshot(path string) ([]unstructured.Unstructured, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	// Unmarshal through Unstructured so integers stay int64
	var objs []unstructured.Unstructured
	if err := json.Unmarshal(jsonData, &objs); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return objs, nil
}
