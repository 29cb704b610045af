package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spektr-org/pokedash/logging"
)

const fixtureCSV = `name,type,hp,attack,defense,speed,sp_attack,sp_defense,total
Bulbasaur,Grass,45,49,49,45,65,65,318
Charmander,Fire,39,52,43,65,60,50,309
Ivysaur,Grass,60,62,63,60,80,80,405
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokemon.csv")
	if err := os.WriteFile(path, []byte(fixtureCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != "pokedash "+version {
		t.Errorf("unexpected output %q", out)
	}
}

func TestOptionsCommand(t *testing.T) {
	out, err := run(t, "options", "--data", writeFixture(t))
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	var set struct {
		Types []string `json:"types"`
		Kinds []struct {
			Value string `json:"value"`
		} `json:"kinds"`
	}
	if err := json.Unmarshal([]byte(out), &set); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if strings.Join(set.Types, ",") != "Grass,Fire" || len(set.Kinds) != 16 {
		t.Errorf("unexpected options %+v", set)
	}
}

func TestRenderCommand(t *testing.T) {
	data := writeFixture(t)

	out, err := run(t, "render", "--data", data, "--type", "Fire", "--metric", "attack", "--kind", "pie")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"title": "Attack of Fire Type Pokémon"`) {
		t.Errorf("unexpected spec output:\n%s", out)
	}

	png := filepath.Join(t.TempDir(), "grass.png")
	if _, err := run(t, "render", "--data", data, "--format", "png", "--out", png); err != nil {
		t.Fatalf("render png: %v", err)
	}
	if b, err := os.ReadFile(png); err != nil || !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Errorf("png not written: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	data := writeFixture(t)

	if _, err := run(t, "render", "--data", data, "--kind", "waterfall"); err == nil ||
		!strings.Contains(err.Error(), "unknown chart kind") {
		t.Errorf("expected unknown chart kind, got %v", err)
	}
	if _, err := run(t, "render", "--data", data, "--format", "gif"); err == nil {
		t.Error("expected unknown format error")
	}
	if _, err := run(t, "render", "--data", filepath.Join(t.TempDir(), "missing.csv")); err == nil ||
		!strings.Contains(err.Error(), "failed to load dataset") {
		t.Errorf("expected load error, got %v", err)
	}
}

func TestLogLevelFlag(t *testing.T) {
	t.Cleanup(func() { logging.SetLevel(logging.LevelInfo) })

	if _, err := run(t, "version", "--log-level", "warn"); err != nil {
		t.Fatalf("version --log-level warn: %v", err)
	}
	if logging.CurrentLevel() != logging.LevelWarn {
		t.Errorf("level = %v, want warn", logging.CurrentLevel())
	}

	if _, err := run(t, "version", "--log-level", "warn", "--debug"); err != nil {
		t.Fatalf("version --debug: %v", err)
	}
	if logging.CurrentLevel() != logging.LevelDebug {
		t.Errorf("--debug should override --log-level, got %v", logging.CurrentLevel())
	}

	if _, err := run(t, "version", "--log-level", "chatty"); err == nil ||
		!strings.Contains(err.Error(), "unknown log level") {
		t.Errorf("expected unknown log level error, got %v", err)
	}
}
