package hugo

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apidocgen/internal/config"
	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
)

const widgetsDoc = `### YamlMime:ManagedReference
items:
- uid: Acme.Widgets
  name: Acme.Widgets
  type: Namespace
  children:
  - Acme.Widgets.Button
- uid: Acme.Widgets.Button
  name: Button
  type: Class
  namespace: Acme.Widgets
  parent: Acme.Widgets
  summary: A clickable control backed by <xref:System.String>.
  syntax:
    content: public class Button
  children:
  - Acme.Widgets.Button.Click(System.Int32)
- uid: Acme.Widgets.Button.Click(System.Int32)
  name: Click(int)
  type: Method
  namespace: Acme.Widgets
  parent: Acme.Widgets.Button
  overload: Acme.Widgets.Button.Click*
  summary: Clicks the button.
  syntax:
    content: public void Click(int count)
    parameters:
    - id: count
      type: System.Int32
      description: Number of clicks.
references:
- uid: System.String
  name: string
- uid: System.Int32
  name: int
`

func writeFixture(t *testing.T, doc string) (inputDir string) {
	t.Helper()
	inputDir = t.TempDir()
	toc := "- uid: Acme.Widgets\n  name: Acme.Widgets\n"
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "toc.yml"), []byte(toc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "Acme.Widgets.yml"), []byte(doc), 0o644))
	return inputDir
}

func testConfig(t *testing.T, inputDir string, workers int) *config.Config {
	t.Helper()
	return &config.Config{
		Input:    inputDir,
		Output:   t.TempDir(),
		BasePath: "api",
		Workers:  workers,
	}
}

func listMarkdown(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".md") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func TestGenerate_Fixture_WritesExpectedTree(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	gen := NewGenerator(cfg, nil)

	require.NoError(t, gen.Generate(context.Background()))

	require.Equal(t, []string{
		"Acme.Widgets/_index.md",
		"Button/Acme.Widgets.Button.Click.md",
		"Button/_index.md",
		"_index.md",
	}, listMarkdown(t, cfg.Output))
}

func TestGenerate_ButtonPage_ResolvesXrefAndChildren(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	gen := NewGenerator(cfg, nil)
	require.NoError(t, gen.Generate(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.Output, "Button", "_index.md"))
	require.NoError(t, err)
	content := string(data)

	require.Contains(t, content, "title: Button")
	require.Contains(t, content, "uid: Acme.Widgets.Button")
	require.Contains(t, content, "[string](https://learn.microsoft.com/dotnet/api/system.string)")
	require.Contains(t, content, "[Click(int)](/api/button/acme.widgets.button.click/)")
	require.Contains(t, content, "```csharp\npublic class Button\n```")
}

func TestGenerate_MethodPage_ParameterTypesLinked(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	gen := NewGenerator(cfg, nil)
	require.NoError(t, gen.Generate(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.Output, "Button", "Acme.Widgets.Button.Click.md"))
	require.NoError(t, err)
	content := string(data)

	require.Contains(t, content, "### Parameters")
	require.Contains(t, content, "`count` [int](https://learn.microsoft.com/dotnet/api/system.int32)")
}

func TestGenerate_Overwrite_ReplacesSummary(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	cfg.Overwrites = t.TempDir()
	ow := "---\nuid: Acme.Widgets.Button\nsummary: *content\n---\nAuthored button summary.\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Overwrites, "button.md"), []byte(ow), 0o644))

	gen := NewGenerator(cfg, nil)
	require.NoError(t, gen.Generate(context.Background()))

	data, err := os.ReadFile(filepath.Join(cfg.Output, "Button", "_index.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Authored button summary.")
}

func TestGenerate_OverwriteUnknownUID_RunStillCompletes(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	cfg.Overwrites = t.TempDir()
	ow := "---\nuid: Missing.Thing\nsummary: Dropped.\n---\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Overwrites, "missing.md"), []byte(ow), 0o644))

	gen := NewGenerator(cfg, nil)
	require.NoError(t, gen.Generate(context.Background()))
	require.Len(t, listMarkdown(t, cfg.Output), 4)
}

const collidingDoc = `items:
- uid: Ns
  name: Ns
  type: Namespace
- uid: Other
  name: Other
  type: Namespace
- uid: Other.Ns
  name: Ns
  type: Class
  namespace: Other
  parent: Other
`

func TestGenerate_PathCollision_AbortsBeforeAnyWrite(t *testing.T) {
	// Namespace "Ns" resolves to Ns/_index; class Other.Ns (prefix-stripped
	// to "Ns") resolves to Ns/_index as well.
	inputDir := t.TempDir()
	toc := "- uid: Ns\n  name: Ns\n"
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "toc.yml"), []byte(toc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "Ns.yml"), []byte(collidingDoc), 0o644))

	cfg := testConfig(t, inputDir, 1)
	gen := NewGenerator(cfg, nil)

	err := gen.Generate(context.Background())
	require.Error(t, err)

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, errors.CategoryPath, classified.Category())

	require.Empty(t, listMarkdown(t, cfg.Output), "no documents may be written after a collision")
}

func TestGenerate_ParallelAndSerial_SamePathSet(t *testing.T) {
	serial := testConfig(t, writeFixture(t, widgetsDoc), 1)
	parallel := testConfig(t, writeFixture(t, widgetsDoc), 8)

	require.NoError(t, NewGenerator(serial, nil).Generate(context.Background()))
	require.NoError(t, NewGenerator(parallel, nil).Generate(context.Background()))

	require.Equal(t, listMarkdown(t, serial.Output), listMarkdown(t, parallel.Output))
}

func TestCheck_DoesNotWrite(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	gen := NewGenerator(cfg, nil)

	require.NoError(t, gen.Check(context.Background()))
	require.Empty(t, listMarkdown(t, cfg.Output))
}

func TestGenerate_MemberUnderNamespace_Aborts(t *testing.T) {
	doc := `items:
- uid: Ns
  name: Ns
  type: Namespace
- uid: Ns.Loose
  name: Loose
  type: Method
  namespace: Ns
  parent: Ns
`
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "toc.yml"), []byte("- uid: Ns\n  name: Ns\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "Ns.yml"), []byte(doc), 0o644))

	cfg := testConfig(t, inputDir, 1)
	err := NewGenerator(cfg, nil).Generate(context.Background())
	require.Error(t, err)

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, errors.CategoryMetadata, classified.Category())
}

func TestGenerate_SuppressedItem_GetsNoPage(t *testing.T) {
	doc := `items:
- uid: Ns
  name: Ns
  type: Namespace
- uid: Ns.Hidden
  name: Hidden
  type: Class
  namespace: Ns
  parent: Ns
  doNotDocument: true
`
	inputDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "toc.yml"), []byte("- uid: Ns\n  name: Ns\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "Ns.yml"), []byte(doc), 0o644))

	cfg := testConfig(t, inputDir, 1)
	require.NoError(t, NewGenerator(cfg, nil).Generate(context.Background()))

	require.Equal(t, []string{"Ns/_index.md", "_index.md"}, listMarkdown(t, cfg.Output))
}

func TestGenerate_LinkAuditCountsNothingOnCleanFixture(t *testing.T) {
	cfg := testConfig(t, writeFixture(t, widgetsDoc), 1)
	gen := NewGenerator(cfg, nil)

	require.NoError(t, gen.Generate(context.Background()))
}
