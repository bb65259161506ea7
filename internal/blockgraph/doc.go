// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package blockgraph is the in-memory model of an author-built query pipeline:
// typed blocks and the directed connections between them.
//
// # Core Concepts
//
//   - Block: a unit of the pipeline. Its Params value is one variant of a closed
//     set of per-kind parameter structs; the variant determines the block Kind.
//
//   - Connection: a directed edge from one block id to another.
//
//   - Graph: the full snapshot handed to the compiler. The authoring surface owns
//     and edits it; the compiler works on a Clone so it never sees a partial edit.
//
// The model performs no normalisation. Missing parameters stay at their zero
// value and are reported by the emitters that need them.
package blockgraph
