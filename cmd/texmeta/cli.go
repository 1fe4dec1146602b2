package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/texmeta"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Normalizer texmeta.Normalizer
	Parser     texmeta.Parser
	Extractor  texmeta.Extractor
	Documents  texmeta.DocumentService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log extraction and catalog operations to stderr"`
	Config  string `type:"path" env:"TEXMETA_CONFIG" help:"YAML file with document reference macros"`

	Parse  ParseCmd  `cmd:"" help:"Extract metadata from LaTeX documents"`
	Add    AddCmd    `cmd:"" help:"Extract documents and add them to the catalog"`
	List   ListCmd   `cmd:"" help:"List catalog documents"`
	Show   ShowCmd   `cmd:"" help:"Show a catalog document"`
	Delete DeleteCmd `cmd:"" help:"Delete a catalog document"`
	Export ExportCmd `cmd:"" help:"Export the catalog to a directory"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Paths       []string `arg:"" type:"path" help:"Root LaTeX files"`
	Format      string   `short:"f" enum:"json,yaml,xml" default:"json" help:"Output format (json, yaml, xml)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Paths       []string `arg:"" type:"path" help:"Root LaTeX files"`
	Force       bool     `short:"f" help:"Replace documents that are already in the catalog"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Series string `short:"s" help:"Only list documents in this series"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Handle string `arg:"" help:"Document handle, e.g. LDM-151"`
	Format string `short:"f" enum:"text,md,xml" default:"text" help:"Output format (text, md, xml)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Handle string `arg:"" help:"Document handle"`
	Force  bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir    string `arg:"" type:"path" help:"Output directory, replaced on success"`
	Format string `short:"f" enum:"md,xml" default:"md" help:"File format (md, xml)"`
	Series string `short:"s" help:"Only export documents in this series"`
	Force  bool   `help:"Replace the directory even if it was not written by export"`
}
