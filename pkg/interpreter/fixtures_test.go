package interpreter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type programFixture struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
}

func loadFixtures(t *testing.T) []programFixture {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	var fixtures []programFixture
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		t.Fatalf("decoding fixtures: %v", err)
	}
	return fixtures
}

func TestProgramFixtures(t *testing.T) {
	for _, fixture := range loadFixtures(t) {
		t.Run(fixture.Name, func(t *testing.T) {
			statements, res := prepare(t, fixture.Source)
			var out bytes.Buffer
			interp := New(&out)
			interp.BindLocals(res)
			err := interp.Interpret(statements)

			if fixture.Error != "" {
				if err == nil {
					t.Fatalf("expected error %q, program succeeded with output %q",
						fixture.Error, out.String())
				}
				if !strings.Contains(err.Error(), fixture.Error) {
					t.Fatalf("expected error containing %q, got %q", fixture.Error, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}
			if got := out.String(); got != fixture.Output {
				t.Fatalf("output mismatch\ngot:\n%s\nwant:\n%s", got, fixture.Output)
			}
		})
	}
}
