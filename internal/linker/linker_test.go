package linker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apidocgen/internal/metadata"
	"git.home.luguber.info/inful/apidocgen/internal/paths"
)

func fixture(t *testing.T) (*metadata.Store, *paths.Resolver) {
	t.Helper()
	s := metadata.NewStore()
	require.NoError(t, s.AddItem(&metadata.Item{UID: "Acme.Widgets", Type: metadata.TypeNamespace, Name: "Acme.Widgets"}))
	require.NoError(t, s.AddItem(&metadata.Item{UID: "Acme.Widgets.Button", Type: metadata.TypeClass, Name: "Button",
		Namespace: "Acme.Widgets", Parent: "Acme.Widgets"}))
	s.AddReference(metadata.Reference{UID: "System.String", Name: "String"})
	s.AddReference(metadata.Reference{UID: "UnityEngine.UI.Text", Name: "Text"})
	s.AddReference(metadata.Reference{UID: "Vendor.Thing", Name: "Thing"})
	s.AddReference(metadata.Reference{UID: "Vendor.Anonymous"})
	require.NoError(t, s.Finalize())

	pr, err := paths.NewResolver(s)
	require.NoError(t, err)
	return s, pr
}

func TestResolve_InternalItem_LinksToResolvedPath(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("Acme.Widgets.Button")
	require.NoError(t, err)
	require.Equal(t, KindItem, res.Kind)
	require.Equal(t, "[Button](/api/button/)", res.Markdown)
}

func TestResolve_InternalItemArray_SuffixInDisplay(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("Acme.Widgets.Button[]")
	require.NoError(t, err)
	require.Equal(t, "[Button[]](/api/button/)", res.Markdown)
}

func TestResolve_SystemStringArray_AliasAndExternalURL(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("System.String[]")
	require.NoError(t, err)
	require.Equal(t, KindAuthority, res.Kind)
	require.Equal(t, "[string[]](https://learn.microsoft.com/dotnet/api/system.string)", res.Markdown)
}

func TestResolve_UnityReference_SkipsLeadingSegment(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("UnityEngine.UI.Text")
	require.NoError(t, err)
	require.Equal(t, KindAuthority, res.Kind)
	require.Equal(t, "[Text](https://docs.unity3d.com/ScriptReference/UI.Text.html)", res.Markdown)
}

func TestResolve_NestedPrefixes_MostSpecificWins(t *testing.T) {
	rules := []AuthorityRule{
		{Prefix: "X", URLTemplate: "https://x.example/%s"},
		{Prefix: "X.UI", SkipSegments: 2, URLTemplate: "https://x.example/ui/%s"},
	}

	store := metadata.NewStore()
	require.NoError(t, store.AddItem(&metadata.Item{UID: "Root", Type: metadata.TypeNamespace, Name: "Root"}))
	store.AddReference(metadata.Reference{UID: "X.UI.Button", Name: "Button"})
	store.AddReference(metadata.Reference{UID: "X.Button", Name: "Button"})
	require.NoError(t, store.Finalize())
	pr, err := paths.NewResolver(store)
	require.NoError(t, err)

	r := NewResolver(store, pr, "api", rules)

	res, err := r.Resolve("X.UI.Button")
	require.NoError(t, err)
	require.Equal(t, "[Button](https://x.example/ui/Button)", res.Markdown)

	res, err = r.Resolve("X.Button")
	require.NoError(t, err)
	require.Equal(t, "[Button](https://x.example/Button)", res.Markdown)
}

func TestResolve_ReferenceWithoutAuthority_CodeStyledName(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("Vendor.Thing")
	require.NoError(t, err)
	require.Equal(t, KindReference, res.Kind)
	require.Equal(t, "`Thing`", res.Markdown)
}

func TestResolve_ReferenceWithoutName_FallsBackToUID(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("Vendor.Anonymous")
	require.NoError(t, err)
	require.Equal(t, "`Vendor.Anonymous`", res.Markdown)
}

func TestResolve_NoMatchAnywhere_CodeStyledIdentifier(t *testing.T) {
	s, pr := fixture(t)
	r := NewResolver(s, pr, "api", nil)

	res, err := r.Resolve("Unknown.Symbol[]")
	require.NoError(t, err)
	require.Equal(t, KindUnresolved, res.Kind)
	require.Equal(t, "`Unknown.Symbol[]`", res.Markdown)
}

func TestResolve_AuthorityStripsParameterList(t *testing.T) {
	store := metadata.NewStore()
	require.NoError(t, store.AddItem(&metadata.Item{UID: "Root", Type: metadata.TypeNamespace, Name: "Root"}))
	store.AddReference(metadata.Reference{UID: "System.Convert.ToInt32(System.String)", Name: "ToInt32"})
	require.NoError(t, store.Finalize())
	pr, err := paths.NewResolver(store)
	require.NoError(t, err)
	r := NewResolver(store, pr, "api", nil)

	res, err := r.Resolve("System.Convert.ToInt32(System.String)")
	require.NoError(t, err)
	require.Equal(t, "[ToInt32](https://learn.microsoft.com/dotnet/api/system.convert.toint32)", res.Markdown)
}
