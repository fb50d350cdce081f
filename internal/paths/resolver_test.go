package paths

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apidocgen/internal/metadata"
)

func fixtureStore(t *testing.T, items ...*metadata.Item) *metadata.Store {
	t.Helper()
	s := metadata.NewStore()
	for _, it := range items {
		require.NoError(t, s.AddItem(it))
	}
	require.NoError(t, s.Finalize())
	return s
}

func resolver(t *testing.T, s *metadata.Store) *Resolver {
	t.Helper()
	r, err := NewResolver(s)
	require.NoError(t, err)
	return r
}

func TestNewResolver_UnfinalizedStore_Fails(t *testing.T) {
	_, err := NewResolver(metadata.NewStore())
	require.Error(t, err)
}

func TestResolve_Namespace_UIDSlashIndex(t *testing.T) {
	s := fixtureStore(t, &metadata.Item{UID: "Acme.Widgets", Type: metadata.TypeNamespace, Name: "Acme.Widgets"})
	r := resolver(t, s)

	it, _ := s.Item("Acme.Widgets")
	path, err := r.Resolve(it)
	require.NoError(t, err)
	require.Equal(t, "Acme.Widgets/_index", path)
}

func TestResolve_Class_StripsNamespacePrefix(t *testing.T) {
	s := fixtureStore(t,
		&metadata.Item{UID: "Acme.Widgets", Type: metadata.TypeNamespace, Name: "Acme.Widgets"},
		&metadata.Item{UID: "Acme.Widgets.Button", Type: metadata.TypeClass, Name: "Button",
			Namespace: "Acme.Widgets", Parent: "Acme.Widgets"},
	)
	r := resolver(t, s)

	it, _ := s.Item("Acme.Widgets.Button")
	path, err := r.Resolve(it)
	require.NoError(t, err)
	require.Equal(t, "Button/_index", path)
}

func TestResolve_Method_ParentDirPlusShortUID(t *testing.T) {
	s := fixtureStore(t,
		&metadata.Item{UID: "Acme.Widgets", Type: metadata.TypeNamespace, Name: "Acme.Widgets"},
		&metadata.Item{UID: "Acme.Widgets.Button", Type: metadata.TypeClass, Name: "Button",
			Namespace: "Acme.Widgets", Parent: "Acme.Widgets"},
		&metadata.Item{UID: "Acme.Widgets.Button.Click(System.Int32)", Type: metadata.TypeMethod, Name: "Click",
			Namespace: "Acme.Widgets", Parent: "Acme.Widgets.Button", Overload: "Acme.Widgets.Button.Click*"},
	)
	r := resolver(t, s)

	it, _ := s.Item("Acme.Widgets.Button.Click(System.Int32)")
	path, err := r.Resolve(it)
	require.NoError(t, err)
	require.Equal(t, "Button/Acme.Widgets.Button.Click", path)
}

func TestResolve_MemberUnderNamespace_FatalStructural(t *testing.T) {
	s := fixtureStore(t,
		&metadata.Item{UID: "Acme.Widgets", Type: metadata.TypeNamespace, Name: "Acme.Widgets"},
		&metadata.Item{UID: "Acme.Widgets.Loose", Type: metadata.TypeMethod, Name: "Loose",
			Namespace: "Acme.Widgets", Parent: "Acme.Widgets"},
	)
	r := resolver(t, s)

	it, _ := s.Item("Acme.Widgets.Loose")
	_, err := r.Resolve(it)
	require.Error(t, err)
}

func TestResolve_GenericArityAndNestedTypeMarkers_Rewritten(t *testing.T) {
	s := fixtureStore(t,
		&metadata.Item{UID: "Acme", Type: metadata.TypeNamespace, Name: "Acme"},
		&metadata.Item{UID: "Acme.List`1", Type: metadata.TypeClass, Name: "List<T>",
			Namespace: "Acme", Parent: "Acme"},
		&metadata.Item{UID: "Acme.Outer#Inner", Type: metadata.TypeClass, Name: "Inner",
			Namespace: "Acme", Parent: "Acme"},
	)
	r := resolver(t, s)

	generic, _ := s.Item("Acme.List`1")
	path, err := r.Resolve(generic)
	require.NoError(t, err)
	require.Equal(t, "List-1/_index", path)

	nested, _ := s.Item("Acme.Outer#Inner")
	path, err = r.Resolve(nested)
	require.NoError(t, err)
	require.Equal(t, "Outer_Inner/_index", path)
}

func TestResolve_CaseCollidingNamespaces_SuffixedPathsDiffer(t *testing.T) {
	s := fixtureStore(t,
		&metadata.Item{UID: "Foo", Type: metadata.TypeNamespace, Name: "Foo"},
		&metadata.Item{UID: "foo", Type: metadata.TypeNamespace, Name: "foo"},
	)
	r := resolver(t, s)

	upper, _ := s.Item("Foo")
	lower, _ := s.Item("foo")

	upperPath, err := r.Resolve(upper)
	require.NoError(t, err)
	lowerPath, err := r.Resolve(lower)
	require.NoError(t, err)

	require.Equal(t, "Foo0/_index", upperPath)
	require.Equal(t, "foo1/_index", lowerPath)
}

func TestResolve_InjectiveAcrossStore_CaseInsensitive(t *testing.T) {
	s := fixtureStore(t,
		&metadata.Item{UID: "Acme", Type: metadata.TypeNamespace, Name: "Acme"},
		&metadata.Item{UID: "Acme.Button", Type: metadata.TypeClass, Name: "Button", Namespace: "Acme", Parent: "Acme"},
		&metadata.Item{UID: "Acme.button", Type: metadata.TypeClass, Name: "button", Namespace: "Acme", Parent: "Acme"},
		&metadata.Item{UID: "Acme.Button.Press", Type: metadata.TypeMethod, Name: "Press",
			Namespace: "Acme", Parent: "Acme.Button", Overload: "Acme.Button.Press*"},
	)
	r := resolver(t, s)

	reg := NewRegistry()
	for _, it := range s.Items() {
		path, err := r.Resolve(it)
		require.NoError(t, err)
		require.NoError(t, reg.Claim(path), "collision on %s", it.UID)
	}
}
