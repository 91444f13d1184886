//
//  internal/theme/helper.go
//
//  Template functions shared by every theme.  Page data already carries
//  the resolved settings, so the helpers stay few: asset URLs and a map
//  builder for passing several values into a partial.
//

package theme

import "html/template"

// FuncMap returns the global template function map bound to asset.
func FuncMap(asset func(string) string) template.FuncMap {
	return template.FuncMap{
		"asset": asset,
		"dict":  dict,
	}
}

// dict builds a map in templates: {{ template "row" dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
