package schema

import "strings"

// AnalysisResult is the project graph produced by the external analyzer.
// Agents and the IDE shell provide this via POST /api/codemap or codemap.load.
type AnalysisResult struct {
	Root    string       `json:"root,omitempty"`
	Modules []ModuleInfo `json:"modules"`
	Edges   []ImportEdge `json:"edges,omitempty"`
	Stats   Stats        `json:"stats,omitempty"`
}

// ModuleInfo describes a single source file discovered by the analyzer.
type ModuleInfo struct {
	Path      string         `json:"path"`
	Functions []FunctionInfo `json:"functions,omitempty"`
	Classes   []ClassInfo    `json:"classes,omitempty"`
	Imports   []string       `json:"imports,omitempty"`
	Error     string         `json:"error,omitempty"` // analyzer-side parse failure, module kept as a bare node
}

// FunctionInfo describes a top-level function in a module.
type FunctionInfo struct {
	Name      string   `json:"name"`
	StartLine int      `json:"start_line,omitempty"`
	EndLine   int      `json:"end_line,omitempty"`
	Args      []string `json:"args,omitempty"`
	Docstring string   `json:"docstring,omitempty"`
}

// ClassInfo describes a class defined in a module.
type ClassInfo struct {
	Name      string         `json:"name"`
	StartLine int            `json:"start_line,omitempty"`
	EndLine   int            `json:"end_line,omitempty"`
	Methods   []FunctionInfo `json:"methods,omitempty"`
	Docstring string         `json:"docstring,omitempty"`
}

// ImportEdge is a cross-module relationship (import or resolved call).
type ImportEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Stats summarizes the analysis result.
type Stats struct {
	TotalModules   int `json:"total_modules"`
	TotalFunctions int `json:"total_functions"`
	TotalClasses   int `json:"total_classes"`
}

// ComputeStats derives Stats from the module list. Used when the
// analyzer payload omits the stats block.
func (r *AnalysisResult) ComputeStats() Stats {
	s := Stats{TotalModules: len(r.Modules)}
	for _, m := range r.Modules {
		s.TotalFunctions += len(m.Functions)
		s.TotalClasses += len(m.Classes)
	}
	return s
}

// Search returns the modules whose path, functions, or classes match any
// of the given keywords, case-insensitively. A module matches at most once.
func Search(r *AnalysisResult, keywords []string) []ModuleInfo {
	if r == nil || len(keywords) == 0 {
		return nil
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			lowered = append(lowered, strings.ToLower(k))
		}
	}

	var results []ModuleInfo
	for _, mod := range r.Modules {
		if matchesAny(strings.ToLower(mod.Path), lowered) {
			results = append(results, mod)
			continue
		}
		matched := false
		for _, fn := range mod.Functions {
			if matchesAny(strings.ToLower(fn.Name), lowered) {
				matched = true
				break
			}
		}
		if !matched {
			for _, cls := range mod.Classes {
				if matchesAny(strings.ToLower(cls.Name), lowered) {
					matched = true
					break
				}
			}
		}
		if matched {
			results = append(results, mod)
		}
	}
	return results
}

func matchesAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
