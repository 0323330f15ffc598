package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-datagen/internal/prompt"
	"github.com/goliatone/go-datagen/pkg/profile"
)

const (
	ordersProfile = "../../examples/fixtures/orders.yaml"
	ordersOpenAPI = "../../examples/fixtures/orders-openapi.yaml"
)

const contradictoryProfile = `{
  "fields": [{"name": "price", "type": "numeric"}],
  "rules": [
    {"rule": "above ten", "constraints": [{"field": "price", "is": "greaterThan", "value": 10}]},
    {"rule": "below five", "constraints": [{"field": "price", "is": "lessThan", "value": 5}]}
  ]
}`

type fakePrompt struct {
	selected  int
	confirmed bool
	selects   []prompt.SelectConfig
	confirms  []prompt.ConfirmConfig
}

func (f *fakePrompt) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	f.selects = append(f.selects, cfg)
	return f.selected, nil
}

func (f *fakePrompt) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	f.confirms = append(f.confirms, cfg)
	return f.confirmed, nil
}

type harness struct {
	app    *app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	prompt *fakePrompt
}

func newHarness(interactive bool) *harness {
	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		prompt: &fakePrompt{},
	}
	a := newApp()
	a.stdout = h.stdout
	a.stderr = h.stderr
	a.prompt = h.prompt
	a.interactive = func() bool { return interactive }
	h.app = a
	return h
}

func (h *harness) run(args ...string) error {
	root := newRootCommand(h.app)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	h := newHarness(false)
	require.NoError(t, h.run("version"))
	require.Equal(t, version+"\n", h.stdout.String())
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 1, exitCode(errors.New("boom")))
	require.Equal(t, 2, exitCode(errContradiction))
}

func TestCheck_Text(t *testing.T) {
	h := newHarness(false)
	require.NoError(t, h.run("check", ordersProfile))

	out := h.stdout.String()
	require.Contains(t, out, "== profile ==")
	require.Contains(t, out, "quantity (numeric)")
	require.NotContains(t, out, "IMPOSSIBLE")
}

func TestCheck_Contradiction(t *testing.T) {
	h := newHarness(false)
	path := writeFile(t, "prices.json", contradictoryProfile)

	err := h.run("check", path)
	require.ErrorIs(t, err, errContradiction)
	require.Equal(t, 2, exitCode(err))
	require.Contains(t, h.stdout.String(), "price (numeric): IMPOSSIBLE")
	require.Contains(t, h.stderr.String(), "field admits no value")
}

func TestCheck_ConstraintOnWrongFieldType(t *testing.T) {
	h := newHarness(false)
	path := writeFile(t, "names.yaml", `fields:
  - {name: name, type: string}
rules:
  - rule: names are large
    constraints:
      - {field: name, is: greaterThan, value: 10}
`)

	err := h.run("check", path)
	require.ErrorIs(t, err, profile.ErrValidation)
	require.NotErrorIs(t, err, errContradiction)
	require.Equal(t, 1, exitCode(err))
	require.ErrorContains(t, err, `greaterThan applies to numeric fields, "name" is string`)
}

func TestCheck_ViolateAsJSON(t *testing.T) {
	h := newHarness(false)
	require.NoError(t, h.run("check", ordersProfile,
		"--violate", "quantity is a positive whole number below 1000",
		"-r", "json"))

	var doc struct {
		Reports []struct {
			Violated    string `json:"violated"`
			Alternative int    `json:"alternative"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &doc))
	require.Len(t, doc.Reports, 4)
	for i, r := range doc.Reports {
		require.Equal(t, "quantity is a positive whole number below 1000", r.Violated)
		require.Equal(t, i, r.Alternative)
	}
}

func TestCheck_OutputFileAndConfig(t *testing.T) {
	h := newHarness(false)
	cfg := writeFile(t, "datagen.yaml", "renderer: yaml\nlimits:\n  maxStringLength: 20\n")
	out := filepath.Join(t.TempDir(), "report.yaml")

	require.NoError(t, h.run("--config", cfg, "check", ordersProfile, "-o", out))
	require.Empty(t, h.stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "reports:")
}

func TestCheck_Errors(t *testing.T) {
	h := newHarness(false)
	require.ErrorContains(t, h.run("check", ordersProfile, "-r", "html"), "unknown renderer")
	require.ErrorContains(t, h.run("check", ordersProfile, "--violate", "no such rule"), "not found")
	require.Error(t, h.run("check", filepath.Join(t.TempDir(), "missing.json")))
	require.ErrorContains(t, h.run("--log-level", "loud", "version"), "invalid --log-level")
}

func TestParseConfig(t *testing.T) {
	cfg, err := parseConfig([]byte(`
renderer: json
limits:
  numericMin: "-100"
  numericMax: "100"
  numericScale: 2
  maxStringLength: 50
  dateTimeMin: "2000-01-01T00:00:00.000Z"
  dateTimeMax: "2030-12-31T23:59:59.999Z"
`))
	require.NoError(t, err)
	require.Equal(t, "json", cfg.Renderer)
	require.Equal(t, "-100", cfg.Limits.NumericMin.String())
	require.Equal(t, 2, cfg.Limits.NumericScale)
	require.Equal(t, 50, cfg.Limits.MaxStringLength)
	require.Equal(t, 2000, cfg.Limits.DateTimeMin.Year())

	empty, err := parseConfig(nil)
	require.NoError(t, err)
	require.Empty(t, empty.Renderer)
	require.True(t, empty.Limits.NumericMax.Equal(defaultConfig().Limits.NumericMax))
	require.Equal(t, defaultConfig().Limits.MaxStringLength, empty.Limits.MaxStringLength)

	invalid := []string{
		"unknown: true\n",
		"limits:\n  numericMin: ten\n",
		"limits:\n  numericMin: \"10\"\n  numericMax: \"5\"\n",
		"limits:\n  numericScale: 21\n",
		"limits:\n  dateTimeMin: \"2000-02-30T00:00:00.000Z\"\n",
	}
	for _, doc := range invalid {
		_, err := parseConfig([]byte(doc))
		require.Error(t, err, doc)
	}
}

func TestImport_ExplicitComponent(t *testing.T) {
	h := newHarness(false)
	require.NoError(t, h.run("import-openapi", ordersOpenAPI, "-c", "Order"))

	p, err := profile.Decode(h.stdout.Bytes(), profile.FormatJSON)
	require.NoError(t, err)
	require.Len(t, p.Fields, 5)
}

func TestImport_RequiresComponentWhenNotInteractive(t *testing.T) {
	h := newHarness(false)
	err := h.run("import-openapi", ordersOpenAPI)
	require.ErrorContains(t, err, "--component is required; available: Instrument, Order")
	require.Empty(t, h.prompt.selects)
}

func TestImport_PromptsForComponent(t *testing.T) {
	h := newHarness(true)
	h.prompt.selected = 1
	require.NoError(t, h.run("import-openapi", ordersOpenAPI, "-f", "yaml"))

	require.Len(t, h.prompt.selects, 1)
	require.Equal(t, []string{"Instrument", "Order"}, h.prompt.selects[0].Options)

	p, err := profile.Decode(h.stdout.Bytes(), profile.FormatYAML)
	require.NoError(t, err)
	require.Equal(t, "id", p.Fields[0].Name)
}

func TestImport_Overwrite(t *testing.T) {
	existing := writeFile(t, "order.json", "{}")

	h := newHarness(false)
	require.ErrorContains(t, h.run("import-openapi", ordersOpenAPI, "-c", "Order", "-o", existing), "pass --force")

	h = newHarness(true)
	err := h.run("import-openapi", ordersOpenAPI, "-c", "Order", "-o", existing)
	require.ErrorIs(t, err, prompt.ErrAborted)
	require.Len(t, h.prompt.confirms, 1)

	h = newHarness(true)
	h.prompt.confirmed = true
	require.NoError(t, h.run("import-openapi", ordersOpenAPI, "-c", "Order", "-o", existing))

	h = newHarness(false)
	require.NoError(t, h.run("import-openapi", ordersOpenAPI, "-c", "Instrument", "-o", existing, "--force"))
	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `"isin"`))
}

func TestImport_Errors(t *testing.T) {
	h := newHarness(false)
	require.ErrorContains(t, h.run("import-openapi", ordersOpenAPI, "-c", "Order", "-f", "toml"), "unsupported --format")
	require.ErrorContains(t, h.run("import-openapi", ordersOpenAPI, "-c", "Missing"), "not found")
}

func TestValidate(t *testing.T) {
	h := newHarness(false)
	require.NoError(t, h.run("validate", ordersProfile))
	require.Empty(t, h.stdout.String())

	path := writeFile(t, "prices.json", contradictoryProfile)
	h = newHarness(false)
	require.NoError(t, h.run("validate", path))

	h = newHarness(false)
	err := h.run("validate", path, "--satisfiable")
	require.ErrorContains(t, err, "1 issue(s)")
	require.Contains(t, h.stdout.String(), `field "price": constraints admit no value`)

	broken := writeFile(t, "broken.json", `{"fields": [{"name": "a", "type": "string"}], "rules": [{"rule": "r", "constraints": [{"field": "a", "is": "ofLength", "value": -1}]}]}`)
	h = newHarness(false)
	require.Error(t, h.run("validate", broken, "--json"))

	var result struct {
		Valid  bool `json:"valid"`
		Issues []struct {
			Path string `json:"path"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &result))
	require.False(t, result.Valid)
	require.Equal(t, "/rules/0/constraints/0", result.Issues[0].Path)
}
