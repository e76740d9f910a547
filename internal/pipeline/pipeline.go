// Package pipeline wires the build phases together: parse, build, then
// canonicalize, count references, and resolve roots. The phases run
// strictly in order, so no phase ever sees a partially built graph.
package pipeline

import (
	"fmt"
	"path/filepath"

	"starsheet/internal/config"
	"starsheet/internal/graph"
	"starsheet/internal/lexicon"
	"starsheet/internal/parser"
)

type Result struct {
	Graph    *graph.Graph
	Counts   *graph.Counts
	Roots    map[string]struct{}
	Warnings []graph.Warning
}

func Run(cfg *config.ProjectConfig) (*Result, error) {
	trans := lexicon.NewTranslations()

	textDocs := make([]*parser.Document, 0, len(cfg.TextFiles))
	for _, name := range cfg.TextFiles {
		doc, err := parser.ParseFile(filepath.Join(cfg.DataDir, name))
		if err != nil {
			return nil, err
		}
		textDocs = append(textDocs, doc)
	}
	if err := trans.LoadMessages(textDocs...); err != nil {
		return nil, err
	}

	if cfg.BlueprintFile != "" {
		doc, err := parser.ParseFile(filepath.Join(cfg.DataDir, cfg.BlueprintFile))
		if err != nil {
			return nil, err
		}
		if err := trans.LoadBlueprints(doc); err != nil {
			return nil, err
		}
	}

	docs, err := parser.LoadDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	builder := graph.NewBuilder(trans)
	g, warnings, err := builder.Build(docs)
	if err != nil {
		return nil, err
	}

	graph.Canonicalize(g)

	counts, err := graph.CountRefs(g)
	if err != nil {
		return nil, err
	}

	sectorDocs, err := selectDocs(docs, cfg.DataDir, cfg.SectorFiles)
	if err != nil {
		return nil, err
	}
	bossDocs, err := selectDocs(docs, cfg.DataDir, cfg.BossFiles)
	if err != nil {
		return nil, err
	}
	rootNames := append(append([]string{}, cfg.Roots...), graph.SectorRoots(sectorDocs, bossDocs)...)

	roots, err := graph.ResolveRoots(g, rootNames)
	if err != nil {
		return nil, err
	}

	return &Result{
		Graph:    g,
		Counts:   counts,
		Roots:    roots,
		Warnings: warnings,
	}, nil
}

func selectDocs(docs []*parser.Document, dataDir string, names []string) ([]*parser.Document, error) {
	byPath := make(map[string]*parser.Document, len(docs))
	for _, doc := range docs {
		byPath[doc.SourceFile] = doc
	}
	selected := make([]*parser.Document, 0, len(names))
	for _, name := range names {
		doc, ok := byPath[filepath.Join(dataDir, name)]
		if !ok {
			return nil, fmt.Errorf("configured data file %s not found in %s", name, dataDir)
		}
		selected = append(selected, doc)
	}
	return selected, nil
}
