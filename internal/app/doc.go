// Package app contains the core application logic. It wires the graph
// loader, the compiler and the optional preview publisher together,
// decoupled from any specific entrypoint like a CLI.
package app
