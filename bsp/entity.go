// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Entity struct {
	properties map[string]string
	src        []byte
}

func NewEntity(p []byte) *Entity {
	e := &Entity{properties: make(map[string]string), src: p}
	// parse the entity line by line
	lines := bytes.Split(p, []byte("\n"))
	for _, l := range lines {
		// look for something of the form
		// "key" "value"
		q := bytes.IndexByte(l, '"')
		if q == -1 {
			continue
		}
		r := l[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			continue
		}
		key := string(r[:q])
		r = r[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			continue
		}
		r = r[q+1:]
		q = bytes.IndexByte(r, '"')
		if q == -1 {
			continue
		}
		value := string(r[:q])
		e.properties[key] = value
	}
	return e
}

func (e *Entity) Property(name string) (string, bool) {
	v, ok := e.properties[name]
	return v, ok
}

func (e *Entity) Name() (string, bool) {
	v, ok := e.properties["classname"]
	return v, ok
}

// Wads returns the ';' separated wad list of a worldspawn.
func (e *Entity) Wads() []string {
	v, ok := e.properties["wad"]
	if !ok {
		return nil
	}
	var wads []string
	for _, w := range strings.Split(v, ";") {
		if w = strings.TrimSpace(w); w != "" {
			wads = append(wads, w)
		}
	}
	return wads
}

func ParseEntities(data []byte) []*Entity {
	/*
		The data looks like:
		{
		  "name" "value"
		  "name2" "value2"
		}
		{
		  "name3" "value"
		}
	*/
	// First split the entities
	es := []*Entity{}
	var ess [][]byte
	var ob, q int
	start := -1
	for i, b := range data {
		switch b {
		case '{':
			if q != 0 {
				break
			}
			if start == -1 {
				start = i
			} else {
				ob++
			}
		case '}':
			if q != 0 {
				break
			}
			if start == -1 {
				// Bad input
				return nil
			}
			if ob == 0 {
				ess = append(ess, data[start:i+1])
				start = -1
			} else {
				ob--
			}
		case '"':
			if q == 0 {
				q++
			} else {
				q--
			}
		}
	}
	for _, e := range ess {
		es = append(es, NewEntity(e))
	}
	return es
}

const (
	ClassWorldSpawn    = "worldspawn"
	ClassFuncWall      = "func_wall"
	ClassFuncBreakable = "func_breakable"
)

// ModelRef names one model of the file.
type ModelRef struct {
	Name      string
	ClassName string
	Model     int
	Entity    *Entity // nil for an implicit worldspawn
}

// modelIndex parses brush model references of the form "*N".
func modelIndex(s string, numModels int) (int, error) {
	if !strings.HasPrefix(s, "*") {
		return 0, errors.Wrapf(ErrInvalidReference, "model %q is not a brush model", s)
	}
	idx, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidReference, "model %q: %v", s, err)
	}
	if idx < 0 || idx >= numModels {
		return 0, outOfRange("model", idx, numModels)
	}
	return idx, nil
}

// ResolveModels maps the worldspawn, func_wall and func_breakable entities to
// the models they use. The world model always comes first.
func ResolveModels(entities []*Entity, numModels int) ([]ModelRef, error) {
	if numModels < 1 {
		return nil, errors.Wrap(ErrInvalidReference, "file has no world model")
	}
	world := ModelRef{Name: ClassWorldSpawn, ClassName: ClassWorldSpawn}
	var refs []ModelRef
	counts := map[string]int{}
	for _, e := range entities {
		class, ok := e.Name()
		if !ok {
			continue
		}
		switch class {
		case ClassWorldSpawn:
			world.Entity = e
		case ClassFuncWall, ClassFuncBreakable:
			m, _ := e.Property("model")
			idx, err := modelIndex(m, numModels)
			if err != nil {
				return nil, errors.WithMessage(err, class)
			}
			refs = append(refs, ModelRef{
				Name:      fmt.Sprintf("%s%d", class, counts[class]),
				ClassName: class,
				Model:     idx,
				Entity:    e,
			})
			counts[class]++
		}
	}
	return append([]ModelRef{world}, refs...), nil
}
