// Command monet renders a drawing script or one of the built-in samples to
// an SVG file.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"

	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/config"
	"github.com/monet-draw/monet/internal/script"
)

// Config is the configuration of the monet command.
type Config struct {

	// Script is the JSON drawing script to render.
	Script string `posarg:"0" required:"-"`

	// Sample is the name of a built-in sample to render instead of a script.
	Sample string `flag:"s,sample"`

	// Output is the SVG file to write. It defaults to the drawing name
	// followed by .svg.
	Output string `flag:"o,output"`

	// Unit is the unit of the document width and height.
	Unit string `flag:"u,unit"`

	// MaxCommands refuses scripts with more commands; 0 means no limit.
	MaxCommands int `flag:"max-commands"`

	// List prints the names of the built-in samples and exits.
	List bool `flag:"l,list"`
}

func main() {
	env, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	cfg := &Config{Unit: env.DocumentUnit, MaxCommands: env.MaxCommands}
	opts := cli.DefaultOptions("monet", "Monet renders drawing scripts and built-in samples to SVG files.")
	cli.Run(opts, cfg, &cli.Cmd[*Config]{
		Func: Render,
		Name: "render",
		Doc:  "Render renders a script file or a sample into an SVG file.",
		Root: true,
	})
}

// Render renders the script or sample named by c. The -v and -vv flags
// turn on canvas logging.
func Render(c *Config) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logx.UserLevel})))
	canvas.SetLogger(slog.Default())

	if c.List {
		for _, name := range script.SampleNames() {
			fmt.Println(name)
		}
		return nil
	}

	doc, err := load(c.Sample, c.Script)
	if err != nil {
		return err
	}
	if err := doc.Validate(c.MaxCommands); err != nil {
		return err
	}

	out := c.Output
	if out == "" {
		out = outputName(doc.Name)
	}
	if err := render(out, doc, canvas.WithUnit(c.Unit)); err != nil {
		return err
	}
	slog.Info("drawing written", "file", out, "commands", len(doc.Commands))
	return nil
}

func load(sampleName, scriptPath string) (*script.Document, error) {
	switch {
	case sampleName != "" && scriptPath != "":
		return nil, errors.New("a script file and -sample are exclusive")
	case sampleName != "":
		return script.Sample(sampleName)
	case scriptPath != "":
		f, err := os.Open(scriptPath)
		if err != nil {
			return nil, fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		doc, err := script.Parse(f)
		if err != nil {
			return nil, err
		}
		if doc.Name == "" {
			doc.Name = strings.TrimSuffix(filepath.Base(scriptPath), ".json")
		}
		return doc, nil
	}
	return nil, errors.New("a script file or -sample is required")
}

// render writes doc into the file out. The file holds a complete document
// even when a command fails.
func render(out string, doc *script.Document, opts ...canvas.Option) error {
	c, err := canvas.Create(out, doc.Width, doc.Height, opts...)
	if err != nil {
		return err
	}
	playErr := script.Play(c, doc.Commands)
	if err := c.Close(); err != nil {
		return err
	}
	return playErr
}

func outputName(name string) string {
	if name == "" {
		return "drawing.svg"
	}
	return name + ".svg"
}
