package catalog

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

type fileCatalog struct {
	Categories []fileCategory      `toml:"categories"`
	Manual     map[string][]string `toml:"manual"`
}

type fileCategory struct {
	Frequency   string        `toml:"frequency"`
	Label       string        `toml:"label"`
	Description string        `toml:"description"`
	Sections    []fileSection `toml:"sections"`
}

type fileSection struct {
	ID          string     `toml:"id"`
	AreaName    string     `toml:"area"`
	Tools       []string   `toml:"tools"`
	ImageKey    string     `toml:"image"`
	Step        int        `toml:"step"`
	ParallelTip string     `toml:"parallel_tip"`
	WaitTime    int        `toml:"wait_minutes"`
	WaitAction  string     `toml:"wait_action"`
	Tasks       []fileTask `toml:"tasks"`
}

type fileTask struct {
	ID   string `toml:"id"`
	Text string `toml:"text"`
}

// LoadFile reads a catalog from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a TOML catalog and indexes it.
func Parse(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cats := make([]Category, 0, len(fc.Categories))
	for _, c := range fc.Categories {
		f, err := ParseFrequency(c.Frequency)
		if err != nil {
			return nil, err
		}
		cat := Category{Frequency: f, Label: c.Label, Description: c.Description}
		for _, s := range c.Sections {
			sec := Section{
				ID:          s.ID,
				AreaName:    s.AreaName,
				Tools:       s.Tools,
				ImageKey:    s.ImageKey,
				Step:        s.Step,
				ParallelTip: s.ParallelTip,
				WaitTime:    s.WaitTime,
				WaitAction:  s.WaitAction,
			}
			for _, t := range s.Tasks {
				sec.Tasks = append(sec.Tasks, Task{ID: t.ID, Text: t.Text})
			}
			cat.Sections = append(cat.Sections, sec)
		}
		cats = append(cats, cat)
	}
	return New(cats, fc.Manual)
}
