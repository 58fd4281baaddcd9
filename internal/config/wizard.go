package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docpress! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	portPrompt := promptui.Prompt{
		Label:   "Port to serve on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port selection: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	modePrompt := promptui.Select{
		Label: "Where do raw document exports come from",
		Items: []string{
			"export: fetch from the editor's HTML export endpoint",
			"dir:    read pre-downloaded exports from a local directory",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	if modeIdx == 1 {
		cfg.Source.Mode = SourceDir
		dirPrompt := promptui.Prompt{Label: "Export directory", Default: "exports"}
		dir, err := dirPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("export directory: %w", err)
		}
		cfg.Source.Dir = dir
	}

	for {
		addPrompt := promptui.Prompt{
			Label:     "Register a document",
			IsConfirm: true,
		}
		if _, err := addPrompt.Run(); err != nil {
			break
		}
		doc, err := promptDocument()
		if err != nil {
			return nil, err
		}
		cfg.Documents = append(cfg.Documents, doc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s (%d documents)\n", path, len(cfg.Documents))
	return cfg, nil
}

func promptDocument() (DocumentConfig, error) {
	var doc DocumentConfig

	idPrompt := promptui.Prompt{
		Label: "External document id",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("id is required")
			}
			return nil
		},
	}
	id, err := idPrompt.Run()
	if err != nil {
		return doc, fmt.Errorf("document id: %w", err)
	}
	doc.ID = strings.TrimSpace(id)

	namePrompt := promptui.Prompt{
		Label: "Short name (used in routes and cache keys)",
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("name is required")
			}
			return nil
		},
	}
	name, err := namePrompt.Run()
	if err != nil {
		return doc, fmt.Errorf("document name: %w", err)
	}
	doc.Name = strings.TrimSpace(name)

	routePrompt := promptui.Prompt{
		Label:   "Web route",
		Default: "/docs/" + doc.Name,
	}
	route, err := routePrompt.Run()
	if err != nil {
		return doc, fmt.Errorf("document route: %w", err)
	}
	doc.Route = strings.TrimSpace(route)

	return doc, nil
}
