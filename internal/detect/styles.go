package detect

// Style lists the tokens that open a comment in a language.
type Style struct {
	LinePrefixes []string
	BlockStarts  []string
}

// Prefixes returns every comment-introducing token of the style.
func (s Style) Prefixes() []string {
	out := make([]string, 0, len(s.LinePrefixes)+len(s.BlockStarts))
	out = append(out, s.LinePrefixes...)
	out = append(out, s.BlockStarts...)
	return out
}

var (
	styleC       = Style{LinePrefixes: []string{"//"}, BlockStarts: []string{"/*"}}
	styleHash    = Style{LinePrefixes: []string{"#"}}
	stylePython  = Style{LinePrefixes: []string{"#"}, BlockStarts: []string{`"""`, "'''"}}
	styleRuby    = Style{LinePrefixes: []string{"#"}, BlockStarts: []string{"=begin"}}
	styleSQL     = Style{LinePrefixes: []string{"--"}, BlockStarts: []string{"/*"}}
	styleHTML    = Style{BlockStarts: []string{"<!--"}}
	styleCSS     = Style{BlockStarts: []string{"/*"}}
	styleIni     = Style{LinePrefixes: []string{";", "#"}}
	styleHCL     = Style{LinePrefixes: []string{"//", "#"}, BlockStarts: []string{"/*"}}
	styleLisp    = Style{LinePrefixes: []string{";"}}
	styleHaskell = Style{LinePrefixes: []string{"--"}, BlockStarts: []string{"{-"}}
	styleLua     = Style{LinePrefixes: []string{"--"}, BlockStarts: []string{"--[["}}
	stylePS      = Style{LinePrefixes: []string{"#"}, BlockStarts: []string{"<#"}}
	styleBatch   = Style{LinePrefixes: []string{"REM ", "rem ", "::"}}
	stylePHP     = Style{LinePrefixes: []string{"//", "#"}, BlockStarts: []string{"/*"}}
	styleTeX     = Style{LinePrefixes: []string{"%"}}
	styleJinja   = Style{BlockStarts: []string{"{#"}}
	styleHbs     = Style{BlockStarts: []string{"{{!--", "{{!"}}
	styleOCaml   = Style{BlockStarts: []string{"(*"}}
	styleErlang  = Style{LinePrefixes: []string{"%"}}
)

var languageStyles = map[string]Style{
	"c":           styleC,
	"cpp":         styleC,
	"objective-c": styleC,
	"go":          styleC,
	"javascript":  styleC,
	"typescript":  styleC,
	"csharp":      styleC,
	"java":        styleC,
	"kotlin":      styleC,
	"scala":       styleC,
	"groovy":      styleC,
	"swift":       styleC,
	"rust":        styleC,
	"dart":        styleC,
	"zig":         styleC,
	"php":         stylePHP,
	"python":      stylePython,
	"ruby":        styleRuby,
	"perl":        styleHash,
	"r":           styleHash,
	"julia":       styleHash,
	"elixir":      styleHash,
	"shell":       styleHash,
	"yaml":        styleHash,
	"toml":        styleHash,
	"make":        styleHash,
	"cmake":       styleHash,
	"dockerfile":  styleHash,
	"powershell":  stylePS,
	"batch":       styleBatch,
	"sql":         styleSQL,
	"haskell":     styleHaskell,
	"lua":         styleLua,
	"ocaml":       styleOCaml,
	"erlang":      styleErlang,
	"matlab":      styleTeX,
	"latex":       styleTeX,
	"ini":         styleIni,
	"hcl":         styleHCL,
	"lisp":        styleLisp,
	"clojure":     styleLisp,
	"html":        styleHTML,
	"markdown":    styleHTML,
	"css":         styleCSS,
	"scss":        styleC,
	"jinja":       styleJinja,
	"handlebars":  styleHbs,
}

// genericStyle is used for files whose language is unknown.
var genericStyle = Style{
	LinePrefixes: []string{"//", "#", "--", ";", "%"},
	BlockStarts:  []string{"/*", "<!--", "{-", "(*"},
}

// StyleFor returns the comment style of lang. ok is false when the language
// is unknown; the returned style is then a generic superset.
func StyleFor(lang string) (Style, bool) {
	if s, ok := languageStyles[NormalizeLangName(lang)]; ok {
		return s, true
	}
	return genericStyle, false
}
