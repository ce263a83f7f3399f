// SPDX-License-Identifier: MIT
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// File reads & writes a Relation as a YAML (or JSON) sequence of entries.
	//
	//	- id: "1"
	//	  name: Ada
	//	- id: "2"
	//	  managerId: "1"
	//	  email: grace@example.com
	File struct {
		Path string
	}

	// fileEntry is the on-disk shape of a Record; descriptive fields sit inline.
	fileEntry struct {
		ID         string           `yaml:"id"`
		ManagerID  string           `yaml:"managerId,omitempty"`
		Attributes types.Attributes `yaml:",inline"`
	}
)

// NewFile instantiates a File source.
func NewFile(path string) *File { return &File{Path: path} }

// Fetch reads the Relation, preserving the entries' order.
func (f *File) Fetch(ctx context.Context) (relation Relation, err error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read relation: %w", err)
	}

	var entries []fileEntry
	if err = yaml.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("%s: bad relation: %w", f.Path, err)
	}

	relation = make(Relation, 0, len(entries))
	for index, entry := range entries {
		if entry.ID == "" {
			return nil, fmt.Errorf("%s: entry %d: %w", f.Path, index, ErrMissingID)
		}

		relation = append(relation, newRecord(entry.ID, entry.ManagerID, entry.Attributes))
	}

	fLogger.WithField("path", f.Path).Debugf("fetched %d records", len(relation))

	return
}

// Save writes the Relation, replacing the file atomically.
func (f *File) Save(ctx context.Context, relation Relation) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries := make([]fileEntry, len(relation))
	for index, record := range relation {
		entries[index] = fileEntry{ID: record.ID, ManagerID: record.ManagerID, Attributes: record.Attributes}
	}

	content, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal relation: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".orgchart-*")
	if err != nil {
		return fmt.Errorf("save relation: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("save relation: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save relation: %w", err)
	}

	if err = os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("save relation: %w", err)
	}

	fLogger.WithField("path", f.Path).Debugf("saved %d records", len(relation))

	return
}
