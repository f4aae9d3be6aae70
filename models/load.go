/*
 * load.go, part of deltachem.
 *
 * Copyright 2023 The deltachem developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package models

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"

	chem "github.com/deltachem/deltachem"
)

// LoadSpec reads a Spec from a JSON artifact. Files ending in .gz are
// transparently decompressed; checkpoint metadata usually ships gzipped
// next to the weights.
func LoadSpec(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chem.NewError("models: %v", err)
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, chem.NewError("models: %s is not a gzip file: %v", path, err)
		}
		defer gz.Close()
		r = gz
	}
	s := new(Spec)
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, chem.NewError("models: malformed spec %s: %v", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadDir builds a registry from every .json and .json.gz spec artifact
// in dir, in lexical filename order, so the property-ownership tie-break
// is stable across runs.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, chem.NewError("models: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".json") || strings.HasSuffix(n, ".json.gz") {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, chem.NewError("models: no spec artifacts in %s", dir)
	}
	r := &Registry{}
	for _, n := range names {
		s, err := LoadSpec(filepath.Join(dir, n))
		if err != nil {
			return nil, err
		}
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}
