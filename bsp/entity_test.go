// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"errors"
	"testing"
)

const entityText = `{
"classname" "worldspawn"
"wad" "\half-life\valve\halflife.wad;decals.wad;"
"skyname" "desert"
}
{
"model" "*2"
"classname" "func_wall"
"rendercolor" "0 0 0"
}
{
"classname" "info_player_start"
"origin" "0 0 36"
}
{
"model" "*1"
"classname" "func_breakable"
"material" "0"
}
{
"model" "*3"
"classname" "func_wall"
}
`

func TestParseEntities(t *testing.T) {
	es := ParseEntities([]byte(entityText))
	if len(es) != 5 {
		t.Fatalf("ParseEntities returned %d entities, want 5", len(es))
	}
	if n, _ := es[0].Name(); n != "worldspawn" {
		t.Errorf("first entity is %q", n)
	}
	if v, ok := es[2].Property("origin"); !ok || v != "0 0 36" {
		t.Errorf("origin = %q, %v", v, ok)
	}
	wads := es[0].Wads()
	if len(wads) != 2 || wads[1] != "decals.wad" {
		t.Errorf("Wads() = %q", wads)
	}
}

func TestParseEntitiesBadInput(t *testing.T) {
	if es := ParseEntities([]byte("}{")); es != nil {
		t.Errorf("ParseEntities(bad) = %v", es)
	}
}

func TestResolveModels(t *testing.T) {
	refs, err := ResolveModels(ParseEntities([]byte(entityText)), 4)
	if err != nil {
		t.Fatalf("ResolveModels: %v", err)
	}
	want := []struct {
		name  string
		model int
	}{
		{"worldspawn", 0},
		{"func_wall0", 2},
		{"func_breakable0", 1},
		{"func_wall1", 3},
	}
	if len(refs) != len(want) {
		t.Fatalf("ResolveModels returned %d refs, want %d", len(refs), len(want))
	}
	for i, w := range want {
		if refs[i].Name != w.name || refs[i].Model != w.model {
			t.Errorf("ref %d = %s/%d, want %s/%d", i, refs[i].Name, refs[i].Model, w.name, w.model)
		}
	}
	if refs[0].Entity == nil {
		t.Errorf("worldspawn entity not attached")
	}
}

func TestResolveModelsImplicitWorld(t *testing.T) {
	refs, err := ResolveModels(nil, 1)
	if err != nil {
		t.Fatalf("ResolveModels: %v", err)
	}
	if len(refs) != 1 || refs[0].Model != 0 || refs[0].Entity != nil {
		t.Errorf("ResolveModels(nil) = %+v", refs)
	}
}

func TestResolveModelsBadReference(t *testing.T) {
	for _, m := range []string{"*9", "*x", "models/door.mdl", ""} {
		es := ParseEntities([]byte("{\n\"classname\" \"func_wall\"\n\"model\" \"" + m + "\"\n}\n"))
		if _, err := ResolveModels(es, 4); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("ResolveModels(model %q) error = %v", m, err)
		}
	}
}
