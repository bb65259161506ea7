package hcl

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/ctxlog"
	"github.com/specialistvlad/querygrid/internal/fsutil"
)

const (
	nativeExt = ".hcl"
	jsonExt   = ".hcl.json"
)

// blockSchema represents a `block` in a graph file.
type blockSchema struct {
	Kind string   `hcl:"kind,label"`
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

// connectionSchema represents a `connection` in a graph file.
type connectionSchema struct {
	Source string `hcl:"source,label"`
	Target string `hcl:"target,label"`
}

// fileRoot is a struct used to decode all top-level blocks from any file.
type fileRoot struct {
	Blocks      []*blockSchema      `hcl:"block,block"`
	Connections []*connectionSchema `hcl:"connection,block"`
}

// Loader reads block graphs from HCL files.
type Loader struct {
	converter *Converter
}

// NewLoader creates a new HCL graph loader.
func NewLoader() *Loader {
	return &Loader{converter: NewConverter()}
}

// Load parses every graph file found under the given paths and merges them
// into a single graph. Files are read in lexical order; blocks and
// connections keep their order within each file.
func (l *Loader) Load(ctx context.Context, paths ...string) (blockgraph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, nativeExt, jsonExt)
		if err != nil {
			return blockgraph.Graph{}, fmt.Errorf("failed to find graph files in %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered graph files.", "count", len(files))
	if len(files) == 0 {
		return blockgraph.Graph{}, fmt.Errorf("no %s or %s files found in %s", nativeExt, jsonExt, strings.Join(paths, ", "))
	}

	var g blockgraph.Graph
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return blockgraph.Graph{}, fmt.Errorf("failed to read graph file %s: %w", file, err)
		}
		part, err := l.LoadSource(ctx, file, src)
		if err != nil {
			return blockgraph.Graph{}, err
		}
		g.Blocks = append(g.Blocks, part.Blocks...)
		g.Connections = append(g.Connections, part.Connections...)
	}
	if err := uniqueIDs(g); err != nil {
		return blockgraph.Graph{}, err
	}

	logger.Debug("HCL loading complete.", "blocks", len(g.Blocks), "connections", len(g.Connections))
	return g, nil
}

// LoadSource parses a single in-memory graph file. The filename decides the
// syntax: names ending in .hcl.json are parsed as JSON.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (blockgraph.Graph, error) {
	root, err := parseSource(hclparse.NewParser(), filename, src)
	if err != nil {
		return blockgraph.Graph{}, err
	}

	var g blockgraph.Graph
	for _, bs := range root.Blocks {
		b, err := l.translateBlock(ctx, bs)
		if err != nil {
			return blockgraph.Graph{}, fmt.Errorf("in %s: %w", filename, err)
		}
		g.Blocks = append(g.Blocks, b)
	}
	for _, cs := range root.Connections {
		g.Connections = append(g.Connections, blockgraph.Connection{Source: cs.Source, Target: cs.Target})
	}
	if err := uniqueIDs(g); err != nil {
		return blockgraph.Graph{}, fmt.Errorf("in %s: %w", filename, err)
	}
	return g, nil
}

// uniqueIDs rejects graphs that define the same block id twice.
func uniqueIDs(g blockgraph.Graph) error {
	seen := make(map[string]bool, len(g.Blocks))
	for _, b := range g.Blocks {
		if seen[b.ID] {
			return fmt.Errorf("duplicate block id %q", b.ID)
		}
		seen[b.ID] = true
	}
	return nil
}

func parseSource(parser *hclparse.Parser, filename string, src []byte) (*fileRoot, error) {
	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if strings.HasSuffix(filename, jsonExt) {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decodeRoot(file, filename)
}

func decodeRoot(file *hcl.File, path string) (*fileRoot, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	return &root, nil
}

// translateBlock converts a parsed block into the model, binding its
// attributes to the parameter variant of its kind.
func (l *Loader) translateBlock(ctx context.Context, bs *blockSchema) (blockgraph.Block, error) {
	kind, err := blockgraph.ParseKind(bs.Kind)
	if err != nil {
		return blockgraph.Block{}, fmt.Errorf("block %q: %w", bs.ID, err)
	}
	if strings.TrimSpace(bs.ID) == "" {
		return blockgraph.Block{}, fmt.Errorf("%s block has an empty id", kind)
	}

	target, _ := blockgraph.NewParams(kind)
	label, err := l.converter.DecodeBody(ctx, bs.Body, target)
	if err != nil {
		return blockgraph.Block{}, fmt.Errorf("block %q: %w", bs.ID, err)
	}

	params, ok := reflect.ValueOf(target).Elem().Interface().(blockgraph.Params)
	if !ok {
		return blockgraph.Block{}, fmt.Errorf("block %q: %T is not a parameter variant", bs.ID, target)
	}
	ctxlog.FromContext(ctx).Debug("Translated block.", "block_id", bs.ID, "kind", string(kind))
	return blockgraph.Block{ID: bs.ID, Label: label, Params: params}, nil
}
