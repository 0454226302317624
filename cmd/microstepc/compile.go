package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/comalice/microstepc/internal/cache"
	"github.com/comalice/microstepc/internal/core"
	"github.com/comalice/microstepc/internal/microstep"
	"github.com/comalice/microstepc/internal/normalize"
	"github.com/comalice/microstepc/internal/synth"
	"github.com/comalice/microstepc/internal/tree"
	"github.com/comalice/microstepc/internal/viz"
)

type compileOptions struct {
	debug      bool
	schemaPath string
	encoding   string
	cacheDir   string
}

// compileResult carries everything a caller (compile or watch) needs to
// report success or failure without recomputing anything.
type compileResult struct {
	program *microstep.Program
	errs    []normalize.ConversionError
}

func runCompile(logger *slog.Logger, inputPath string, opts compileOptions, compileCache *cache.Cache) (*compileResult, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if opts.schemaPath != "" {
		if err := validateSchema(opts.schemaPath, raw); err != nil {
			return nil, fmt.Errorf("schema validation: %w", err)
		}
	}

	var key cache.Key
	if compileCache != nil {
		key = cache.KeyOf(raw)
		if p, err := compileCache.Get(key); err == nil {
			logger.Debug("cache hit", "input", inputPath, "key", key)
			return &compileResult{program: p}, nil
		}
	}

	sc, err := tree.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decode statechart tree: %w", err)
	}

	graph, errs := normalize.Normalize(sc)
	if len(errs) > 0 {
		if opts.debug {
			logDebugSuggestions(logger, sc, errs)
		}
		return &compileResult{errs: errs}, nil
	}

	if opts.debug {
		writeGraphArtifacts(logger, inputPath, graph)
	}

	program := synth.Synthesize(graph)

	if compileCache != nil {
		compileCache.Put(key, program)
	}

	return &compileResult{program: program}, nil
}

// logDebugSuggestions logs, at debug level only, a fuzzy near-match for each
// missing-target id against every declared state id. This never touches the
// ConversionError itself — the returned error message stays exactly what
// spec.md's examples show.
func logDebugSuggestions(logger *slog.Logger, sc *tree.Statechart, errs []normalize.ConversionError) {
	declared := collectDeclaredIDs(sc)
	for _, e := range errs {
		if e.Source != normalize.SourceMissingTarget {
			continue
		}
		want := strings.Trim(strings.TrimPrefix(e.Message, "Missing target: "), `"`)
		if best := closestMatch(want, declared); best != "" {
			logger.Debug("missing target near-match", "target", want, "suggestion", best)
		}
	}
}

func collectDeclaredIDs(sc *tree.Statechart) []string {
	var ids []string
	var walk func(n tree.Node)
	walk = func(n tree.Node) {
		var children tree.NodeList
		switch v := n.(type) {
		case *tree.State:
			if v.ID != nil {
				ids = append(ids, *v.ID)
			}
			children = v.Children
		case *tree.Parallel:
			if v.ID != nil {
				ids = append(ids, *v.ID)
			}
			children = v.Children
		case *tree.Final:
			if v.ID != nil {
				ids = append(ids, *v.ID)
			}
			children = v.Children
		case *tree.History:
			if v.ID != nil {
				ids = append(ids, *v.ID)
			}
			children = v.Children
		case *tree.Initial:
			children = v.Children
		}
		for _, c := range children {
			walk(c)
		}
	}
	for _, c := range sc.Children {
		walk(c)
	}
	return ids
}

func closestMatch(want string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(want, candidates)
	if len(ranks) == 0 {
		return ""
	}
	return ranks[0].Target
}

func validateSchema(schemaPath string, raw []byte) error {
	compiler := jsonschema.NewCompiler()
	sch, err := compiler.Compile(schemaPath)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse input as JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return err
	}
	return nil
}

func encodeProgram(w *bytes.Buffer, encoding string, program *microstep.Program) error {
	switch encoding {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(program)
	case "cbor":
		data, err := cbor.Marshal(program)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	default:
		return fmt.Errorf("unknown encoding %q", encoding)
	}
}

func debugArtifactPaths(inputPath string) (dotPath, yamlPath string) {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, base+".dot"), filepath.Join(dir, base+".debug.yaml")
}

func writeGraphArtifacts(logger *slog.Logger, inputPath string, g *core.Graph) {
	dotPath, yamlPath := debugArtifactPaths(inputPath)
	if err := os.WriteFile(dotPath, []byte(viz.ExportDOT(g)), 0o644); err != nil {
		logger.Debug("write dot artifact failed", "error", err)
	} else {
		logger.Debug("wrote debug artifact", "path", dotPath)
	}
	yamlBytes, err := viz.ExportYAML(g)
	if err != nil {
		logger.Debug("export yaml failed", "error", err)
		return
	}
	if err := os.WriteFile(yamlPath, yamlBytes, 0o644); err != nil {
		logger.Debug("write yaml artifact failed", "error", err)
		return
	}
	logger.Debug("wrote debug artifact", "path", yamlPath)
}
