package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestValidateAnalysis_Valid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	raw := []byte(`{
		"root": "/home/dev/project",
		"modules": [
			{"path": "auth.py", "functions": [{"name": "login_user", "start_line": 10}], "classes": []},
			{"path": "models.py", "functions": [], "classes": [{"name": "User"}]}
		],
		"edges": [{"source": "auth.py", "target": "models.py", "label": "imports"}]
	}`)

	result, err := v.ValidateAnalysis(raw)
	require.NoError(t, err)
	require.Len(t, result.Modules, 2)
	assert.Equal(t, "auth.py", result.Modules[0].Path)
	assert.Equal(t, "login_user", result.Modules[0].Functions[0].Name)

	// Stats absent from the payload are derived.
	assert.Equal(t, 2, result.Stats.TotalModules)
	assert.Equal(t, 1, result.Stats.TotalFunctions)
	assert.Equal(t, 1, result.Stats.TotalClasses)
}

func TestValidateAnalysis_MissingModules(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	_, err = v.ValidateAnalysis([]byte(`{"edges": []}`))
	require.Error(t, err)

	var cmErr *CodemapError
	require.ErrorAs(t, err, &cmErr)
	assert.Equal(t, ErrCodeValidation, cmErr.Code)
}

func TestValidateAnalysis_NotJSON(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	_, err = v.ValidateAnalysis([]byte(`not json at all`))
	require.Error(t, err)

	var cmErr *CodemapError
	require.ErrorAs(t, err, &cmErr)
	assert.Equal(t, ErrCodeDecode, cmErr.Code)
}

func TestValidateTrace_Valid(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	raw := []byte(`{
		"file": "auth.py",
		"steps": [
			{"id": 1, "sid": "n1", "kind": "start", "label": "auth.py", "line": 1},
			{"id": 2, "sid": "n2", "parent": 1, "kind": "call", "label": "foo()", "line": 5}
		]
	}`)

	trace, err := v.ValidateTrace(raw)
	require.NoError(t, err)
	require.Len(t, trace.Steps, 2)
	assert.Equal(t, StepKindStart, trace.Steps[0].Kind)
	assert.Equal(t, 1, trace.Steps[1].Parent)
}

func TestValidateTrace_UnknownKind(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	raw := []byte(`{"steps": [{"id": 1, "sid": "n1", "kind": "teleport", "label": "x"}]}`)
	_, err = v.ValidateTrace(raw)
	require.Error(t, err)

	var cmErr *CodemapError
	require.ErrorAs(t, err, &cmErr)
	assert.Equal(t, ErrCodeValidation, cmErr.Code)
}

func TestTraceCheckIntegrity(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Step
		wantErr bool
	}{
		{
			name: "valid chain",
			steps: []Step{
				{ID: 1, SID: "n1", Kind: StepKindStart, Label: "entry"},
				{ID: 2, SID: "n2", Parent: 1, Kind: StepKindCall, Label: "foo()"},
			},
		},
		{
			name: "duplicate sid",
			steps: []Step{
				{ID: 1, SID: "n1", Kind: StepKindStart, Label: "entry"},
				{ID: 2, SID: "n1", Kind: StepKindCall, Label: "foo()"},
			},
			wantErr: true,
		},
		{
			name: "forward parent reference",
			steps: []Step{
				{ID: 1, SID: "n1", Parent: 2, Kind: StepKindStart, Label: "entry"},
				{ID: 2, SID: "n2", Kind: StepKindCall, Label: "foo()"},
			},
			wantErr: true,
		},
		{
			name:  "empty trace",
			steps: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Trace{Steps: tt.steps}
			err := tr.CheckIntegrity()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTraceEdges(t *testing.T) {
	tr := &Trace{Steps: []Step{
		{ID: 1, SID: "n1", Kind: StepKindStart, Label: "entry"},
		{ID: 2, SID: "n2", Parent: 1, Kind: StepKindDefine, Label: "def f()"},
		{ID: 3, SID: "n3", Parent: 2, Kind: StepKindReturn, Label: "return"},
	}}

	edges := tr.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, TraceEdge{From: 1, To: 2}, edges[0])
	assert.Equal(t, TraceEdge{From: 2, To: 3}, edges[1])
}

func TestSearch(t *testing.T) {
	result := &AnalysisResult{Modules: []ModuleInfo{
		{Path: "auth.py", Functions: []FunctionInfo{{Name: "login_user"}, {Name: "hash_password"}}},
		{Path: "database.py", Functions: []FunctionInfo{{Name: "query"}}},
		{Path: "models.py", Classes: []ClassInfo{{Name: "UserOrder"}}},
	}}

	hits := Search(result, []string{"login"})
	require.Len(t, hits, 1)
	assert.Equal(t, "auth.py", hits[0].Path)

	// Matches are case-insensitive and cover class names and paths.
	hits = Search(result, []string{"userorder", "DATABASE"})
	require.Len(t, hits, 2)

	assert.Nil(t, Search(result, nil))
	assert.Nil(t, Search(nil, []string{"x"}))
	assert.Empty(t, Search(result, []string{"nomatch"}))
}
