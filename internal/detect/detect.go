// Package detect guesses the language of a source file from its name and
// shebang line, and knows which tokens open a comment in that language.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"
	"sync"
)

type Info struct {
	Name string
}

// FromPathAndContent detects the language by basename, extension and finally
// the shebang line. An empty Name means the language is unknown.
func FromPathAndContent(p string, data []byte) Info {
	name := detectByPath(p)
	if name != "" {
		if strings.EqualFold(filepath.Ext(p), ".m") && name == "objective-c" && looksLikeMatlab(data) {
			return Info{Name: "matlab"}
		}
		return Info{Name: name}
	}
	if shebang := detectByShebang(data); shebang != "" {
		return Info{Name: shebang}
	}
	return Info{Name: ""}
}

func detectByPath(p string) string {
	base := filepath.Base(p)
	lowerBase := strings.ToLower(base)
	if lang, ok := basenameLanguages[lowerBase]; ok {
		return lang
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return ""
	}
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	stem := strings.TrimSuffix(lowerBase, ext)
	if lang, ok := basenameLanguages[stem]; ok {
		return lang
	}
	return ""
}

func detectByShebang(data []byte) string {
	if len(data) == 0 || !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	end := bytes.IndexByte(data, '\n')
	if end == -1 {
		end = len(data)
	}
	fields := strings.Fields(strings.ToLower(string(data[2:end])))
	if len(fields) == 0 {
		return ""
	}
	interp := filepath.Base(fields[0])
	if interp == "env" {
		interp = ""
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				interp = f
				break
			}
		}
	}
	interp = strings.TrimRight(interp, "0123456789.")
	return shebangLanguages[interp]
}

// NormalizeLangName lower-cases name and resolves common aliases ("py", "c++").
func NormalizeLangName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if canon, ok := langAliases[n]; ok {
		return canon
	}
	return n
}

// CanonicalLangs normalizes language names given by the user (aliases such as
// "js" or "py" included) and drops duplicates, keeping order.
func CanonicalLangs(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		norm := NormalizeLangName(raw)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

var knownLanguages = sync.OnceValue(func() map[string]struct{} {
	set := map[string]struct{}{"matlab": {}}
	for _, table := range []map[string]string{extensionLanguages, basenameLanguages, shebangLanguages} {
		for _, lang := range table {
			set[lang] = struct{}{}
		}
	}
	return set
})

// KnownLanguage reports whether FromPathAndContent can ever report name.
func KnownLanguage(name string) bool {
	_, ok := knownLanguages()[NormalizeLangName(name)]
	return ok
}

func looksLikeMatlab(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	sample := data
	if len(sample) > 4096 {
		sample = sample[:4096]
	}
	sawMatlabKeyword := false
	for _, line := range strings.Split(string(sample), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}
		lower := strings.ToLower(trimmed)
		if strings.HasPrefix(lower, "@interface") || strings.HasPrefix(lower, "@implementation") || strings.HasPrefix(lower, "#import") {
			return false
		}
		if strings.HasPrefix(lower, "function") || strings.HasPrefix(lower, "classdef") {
			return true
		}
		if strings.HasPrefix(lower, "properties") || strings.HasPrefix(lower, "methods") {
			sawMatlabKeyword = true
		}
	}
	return sawMatlabKeyword
}

var basenameLanguages = map[string]string{
	"makefile":       "make",
	"gnumakefile":    "make",
	"cmakelists.txt": "cmake",
	"dockerfile":     "dockerfile",
	"containerfile":  "dockerfile",
	"justfile":       "make",
	"vagrantfile":    "ruby",
	"gemfile":        "ruby",
	"rakefile":       "ruby",
	"podfile":        "ruby",
	"jenkinsfile":    "groovy",
	"procfile":       "yaml",
	".bashrc":        "shell",
	".zshrc":         "shell",
	".profile":       "shell",
}

var extensionLanguages = map[string]string{
	".c":          "c",
	".h":          "c",
	".cc":         "cpp",
	".cpp":        "cpp",
	".cxx":        "cpp",
	".hh":         "cpp",
	".hpp":        "cpp",
	".m":          "objective-c",
	".mm":         "objective-c",
	".go":         "go",
	".js":         "javascript",
	".mjs":        "javascript",
	".cjs":        "javascript",
	".jsx":        "javascript",
	".ts":         "typescript",
	".tsx":        "typescript",
	".py":         "python",
	".pyi":        "python",
	".pyx":        "python",
	".rb":         "ruby",
	".rake":       "ruby",
	".php":        "php",
	".cs":         "csharp",
	".java":       "java",
	".kt":         "kotlin",
	".kts":        "kotlin",
	".scala":      "scala",
	".groovy":     "groovy",
	".gradle":     "groovy",
	".swift":      "swift",
	".rs":         "rust",
	".dart":       "dart",
	".zig":        "zig",
	".erl":        "erlang",
	".ex":         "elixir",
	".exs":        "elixir",
	".hs":         "haskell",
	".elm":        "haskell",
	".ml":         "ocaml",
	".mli":        "ocaml",
	".clj":        "clojure",
	".lisp":       "lisp",
	".el":         "lisp",
	".scm":        "lisp",
	".lua":        "lua",
	".pl":         "perl",
	".pm":         "perl",
	".r":          "r",
	".jl":         "julia",
	".sh":         "shell",
	".bash":       "shell",
	".zsh":        "shell",
	".ksh":        "shell",
	".fish":       "shell",
	".ps1":        "powershell",
	".psm1":       "powershell",
	".bat":        "batch",
	".cmd":        "batch",
	".sql":        "sql",
	".yaml":       "yaml",
	".yml":        "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".cfg":        "ini",
	".conf":       "ini",
	".properties": "ini",
	".env":        "shell",
	".json":       "json",
	".md":         "markdown",
	".markdown":   "markdown",
	".txt":        "text",
	".rst":        "text",
	".tex":        "latex",
	".html":       "html",
	".htm":        "html",
	".xml":        "html",
	".svg":        "html",
	".vue":        "html",
	".svelte":     "html",
	".css":        "css",
	".scss":       "scss",
	".less":       "scss",
	".proto":      "c",
	".tf":         "hcl",
	".hcl":        "hcl",
	".nomad":      "hcl",
	".cue":        "c",
	".bzl":        "python",
	".star":       "python",
	".mk":         "make",
	".cmake":      "cmake",
	".jinja":      "jinja",
	".j2":         "jinja",
	".twig":       "jinja",
	".hbs":        "handlebars",
	".erb":        "ruby",
	".v":          "c",
	".sv":         "c",
}

var langAliases = map[string]string{
	"golang": "go",
	"c#":     "csharp",
	"cs":     "csharp",
	"c++":    "cpp",
	"cc":     "cpp",
	"js":     "javascript",
	"jsx":    "javascript",
	"ts":     "typescript",
	"tsx":    "typescript",
	"kt":     "kotlin",
	"rb":     "ruby",
	"py":     "python",
	"ps1":    "powershell",
	"bash":   "shell",
	"sh":     "shell",
	"zsh":    "shell",
	"mk":     "make",
	"tf":     "hcl",
	"yml":    "yaml",
	"md":     "markdown",
}

var shebangLanguages = map[string]string{
	"python":  "python",
	"pypy":    "python",
	"node":    "javascript",
	"deno":    "typescript",
	"perl":    "perl",
	"ruby":    "ruby",
	"php":     "php",
	"bash":    "shell",
	"sh":      "shell",
	"dash":    "shell",
	"zsh":     "shell",
	"ksh":     "shell",
	"fish":    "shell",
	"pwsh":    "powershell",
	"lua":     "lua",
	"rscript": "r",
	"julia":   "julia",
	"elixir":  "elixir",
	"escript": "erlang",
	"awk":     "shell",
}
