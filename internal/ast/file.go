package ast

import "rc/internal/source"

// File is one parsed source file's top-level declarations, the unit the
// declaration pass (component E) processes.
type File struct {
	Path  string
	Decls []NodeID
}

// Package groups the files that make up one RC package, the unit
// internal/project's DAG orders topologically against other packages.
type Package struct {
	Name  string
	Files []File
}

// AddFile appends a new, empty file to the package and returns its
// index so a parser (or a test) can append declarations to it.
func (p *Package) AddFile(path string) int {
	p.Files = append(p.Files, File{Path: path})
	return len(p.Files) - 1
}

// AddDecl appends a top-level declaration to the given file.
func (p *Package) AddDecl(fileIdx int, decl NodeID) {
	p.Files[fileIdx].Decls = append(p.Files[fileIdx].Decls, decl)
}

// Span reports the spelled-out Span a node covers, reserved for callers
// that only have a Builder and a NodeID and want to hand a location to
// diag without threading source.FileSet through every helper.
func Span(b *Builder, id NodeID) source.Span { return b.At(id).Span }
