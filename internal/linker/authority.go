package linker

import (
	"fmt"
	"sort"
	"strings"
)

// AuthorityRule describes one external documentation source. Rules form an
// ordered table; prefixes may nest ("X" and "X.UI"), so matching always
// tries the most specific prefix first.
type AuthorityRule struct {
	// Prefix matches identifiers equal to it or starting with it plus a dot.
	Prefix string
	// SkipSegments is the number of leading dotted segments dropped before
	// the remainder is substituted into URLTemplate.
	SkipSegments int
	// URLTemplate receives the processed identifier via %s.
	URLTemplate string
	// Lower lowercases the identifier before substitution (and rewrites
	// generic-arity backticks to dashes), for authorities with lowercased
	// URL schemes.
	Lower bool
	// Aliases maps full UIDs to fixed short display names (built-in types).
	Aliases map[string]string
}

func (a AuthorityRule) matches(uid string) bool {
	return uid == a.Prefix || strings.HasPrefix(uid, a.Prefix+".")
}

// url builds the external URL for a UID already stripped of any trailing
// parameter list.
func (a AuthorityRule) url(uid string) string {
	segments := strings.Split(uid, ".")
	if a.SkipSegments > 0 && a.SkipSegments < len(segments) {
		segments = segments[a.SkipSegments:]
	}
	target := strings.Join(segments, ".")
	if a.Lower {
		target = strings.ToLower(target)
		target = strings.ReplaceAll(target, "`", "-")
	}
	return fmt.Sprintf(a.URLTemplate, target)
}

// orderRules sorts a rule table most-specific-prefix-first.
func orderRules(rules []AuthorityRule) []AuthorityRule {
	ordered := make([]AuthorityRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})
	return ordered
}

// dotnetAliases is the fixed short-alias table for .NET built-in types.
var dotnetAliases = map[string]string{
	"System.Boolean": "bool",
	"System.Byte":    "byte",
	"System.Char":    "char",
	"System.Decimal": "decimal",
	"System.Double":  "double",
	"System.Int16":   "short",
	"System.Int32":   "int",
	"System.Int64":   "long",
	"System.Object":  "object",
	"System.SByte":   "sbyte",
	"System.Single":  "float",
	"System.String":  "string",
	"System.UInt16":  "ushort",
	"System.UInt32":  "uint",
	"System.UInt64":  "ulong",
	"System.Void":    "void",
}

// DefaultAuthorities returns the built-in authority table: the .NET API
// browser for System/Microsoft identifiers and the Unity scripting
// reference for UnityEngine/UnityEditor identifiers.
func DefaultAuthorities() []AuthorityRule {
	return []AuthorityRule{
		{
			Prefix:      "System",
			URLTemplate: "https://learn.microsoft.com/dotnet/api/%s",
			Lower:       true,
			Aliases:     dotnetAliases,
		},
		{
			Prefix:      "Microsoft",
			URLTemplate: "https://learn.microsoft.com/dotnet/api/%s",
			Lower:       true,
		},
		{
			Prefix:       "UnityEngine",
			SkipSegments: 1,
			URLTemplate:  "https://docs.unity3d.com/ScriptReference/%s.html",
		},
		{
			Prefix:       "UnityEditor",
			SkipSegments: 1,
			URLTemplate:  "https://docs.unity3d.com/ScriptReference/%s.html",
		},
	}
}
