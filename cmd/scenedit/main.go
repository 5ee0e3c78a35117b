// Command scenedit is the headless entry point for the scene editor core:
// it loads a scene file, prints the hierarchy, and can re-save it, which
// doubles as a round-trip check for the persistence layer.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/calegray/scenedit"
	"github.com/calegray/scenedit/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		scenePath  = flag.String("scene", "", "scene YAML file to load")
		outPath    = flag.String("out", "", "re-save the loaded scene to this path")
	)
	flag.Parse()

	cfg := scenedit.DefaultConfig()
	if *configPath != "" {
		loaded, err := scenedit.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	ed, err := scenedit.NewEditor(cfg)
	if err != nil {
		return err
	}
	defer ed.Close()
	log := ed.Logger()

	if *scenePath != "" {
		ids, err := scene.LoadEditor(*scenePath, ed)
		if err != nil {
			return fmt.Errorf("load scene: %w", err)
		}
		log.Info("scene loaded",
			zap.String("path", *scenePath),
			zap.Int("entities", len(ids)))
	}

	scenedit.UpdateTransforms(ed.Registry())
	printTree(ed.Registry())

	if *outPath != "" {
		if err := scene.SaveFile(*outPath, ed.Registry(), strings.TrimSuffix(*outPath, ".yaml")); err != nil {
			return fmt.Errorf("save scene: %w", err)
		}
		log.Info("scene saved", zap.String("path", *outPath))
	}
	return nil
}

func printTree(reg *scenedit.Registry) {
	for _, root := range reg.Roots() {
		printNode(reg, root, 0)
	}
}

func printNode(reg *scenedit.Registry, e scenedit.Entity, depth int) {
	var marks []string
	if scenedit.HasComponent[scenedit.Transform](reg, e) {
		marks = append(marks, "T")
	}
	if scenedit.HasComponent[scenedit.Renderer](reg, e) {
		marks = append(marks, "R")
	}
	if scenedit.HasComponent[scenedit.Camera](reg, e) {
		marks = append(marks, "C")
	}
	if scenedit.HasComponent[scenedit.Light](reg, e) {
		marks = append(marks, "L")
	}
	if scenedit.HasComponent[scenedit.Script](reg, e) {
		marks = append(marks, "S")
	}
	suffix := ""
	if len(marks) > 0 {
		suffix = " [" + strings.Join(marks, "") + "]"
	}
	if !reg.Active(e) {
		suffix += " (inactive)"
	}
	fmt.Printf("%s%s #%d%s\n", strings.Repeat("  ", depth), reg.Name(e), uint64(e), suffix)
	for _, child := range reg.Children(e) {
		printNode(reg, child, depth+1)
	}
}
