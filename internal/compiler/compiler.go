// Package compiler turns a block graph into a Cypher statement plus a
// diagnostics report.
//
// Compilation is a pure function of the graph snapshot it receives:
//
//  1. The graph is cloned so edits made by the authoring surface during the
//     call cannot be observed.
//  2. The chain package linearises it from the Start block.
//  3. Each chain element is handed to its emitter along with the current
//     binding; fragments are collected in order.
//  4. The assembler appends a single RETURN DISTINCT over the projected
//     bindings and, when a Result Limit block was present, a trailing LIMIT.
//
// The first error aborts compilation: the result then carries that error and
// no text.
package compiler

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/specialistvlad/querygrid/internal/blockgraph"
	"github.com/specialistvlad/querygrid/internal/chain"
	"github.com/specialistvlad/querygrid/internal/ctxlog"
	"github.com/specialistvlad/querygrid/internal/diag"
	"github.com/specialistvlad/querygrid/internal/emit"
	"github.com/specialistvlad/querygrid/internal/naming"
)

// Result is the outcome of one compilation. It is built fresh on every call.
type Result struct {
	Text     string   `json:"text"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// OK reports whether compilation produced a usable statement.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Compile compiles a snapshot of g. It never panics on malformed input; all
// problems are reported through the result.
func Compile(ctx context.Context, g blockgraph.Graph) *Result {
	logger := ctxlog.FromContext(ctx)
	snapshot := g.Clone()
	logger.Debug("Compilation started.", "blocks", len(snapshot.Blocks), "connections", len(snapshot.Connections))

	var diags diag.Collector
	text, err := compile(ctx, snapshot, &diags)
	if err != nil {
		logger.Debug("Compilation failed.", "class", diag.ClassOf(err).String(), "error", err)
		diags.Fail(err)
		text = ""
	}

	res := &Result{
		Text:     text,
		Errors:   diags.Errors(),
		Warnings: diags.Warnings(),
	}
	logger.Debug("Compilation finished.", "ok", res.OK(), "warnings", len(res.Warnings))
	return res
}

func compile(ctx context.Context, g blockgraph.Graph, diags *diag.Collector) (string, error) {
	logger := ctxlog.FromContext(ctx)

	c, warnings, err := chain.Resolve(ctx, g)
	for _, w := range warnings {
		diags.Warn(w)
	}
	if err != nil {
		return "", err
	}

	var (
		asm     assembler
		vars    naming.Allocator
		current string
	)
	for i, b := range c {
		out, err := emit.Emit(b, emit.Input{
			Binding: current,
			First:   i == 0,
			Scope:   asm.scope,
			Vars:    &vars,
		})
		if err != nil {
			return "", err
		}
		logger.Debug("Block emitted.", "block_id", b.ID, "kind", string(b.Kind()), "binding", out.Binding, "path", out.PathBinding)

		asm.add(i, out)
		current = out.Binding
	}

	return asm.finish(current)
}

// assembler accumulates fragments and tracks what the final RETURN projects.
type assembler struct {
	fragments []string
	// projection holds the first element's binding followed by every path binding.
	projection []string
	// scope holds every binding introduced so far.
	scope []string
	// limit is the count of the last Result Limit block, zero when none was seen.
	limit int
}

func (a *assembler) add(pos int, out emit.Output) {
	if out.Fragment != "" {
		a.fragments = append(a.fragments, out.Fragment)
	}
	if pos == 0 && out.Binding != "" {
		a.project(out.Binding)
	}
	if out.PathBinding != "" {
		a.project(out.PathBinding)
	}
	for _, v := range []string{out.Binding, out.PathBinding} {
		if v != "" && !slices.Contains(a.scope, v) {
			a.scope = append(a.scope, v)
		}
	}
	if out.Limit > 0 {
		a.limit = out.Limit
	}
}

func (a *assembler) project(v string) {
	if !slices.Contains(a.projection, v) {
		a.projection = append(a.projection, v)
	}
}

func (a *assembler) finish(current string) (string, error) {
	vars := a.projection
	if len(vars) == 0 && current != "" {
		vars = []string{current}
	}
	if len(vars) == 0 {
		return "", diag.Structuralf("Nothing to return: the chain contains no block that matches entities.")
	}

	lines := append(slices.Clone(a.fragments), "RETURN DISTINCT "+strings.Join(vars, ", "))
	if a.limit > 0 {
		lines = append(lines, "LIMIT "+strconv.Itoa(a.limit))
	}
	return strings.Join(lines, "\n"), nil
}
