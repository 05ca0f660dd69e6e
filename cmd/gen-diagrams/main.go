// gen-diagrams generates sample diagram outputs for README documentation.
// Run: go run ./cmd/gen-diagrams
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chillax-ai/codemap/internal/diagram"
	"github.com/chillax-ai/codemap/pkg/schema"
)

func main() {
	// Branching trace: imports → a class, a guarded function with a
	// loop, and the call/return pair the guard leads to.
	trace := &schema.Trace{
		File: "orders.py",
		Steps: []schema.Step{
			{ID: 1, SID: "n1", Kind: schema.StepKindStart, Label: "orders.py"},
			{ID: 2, SID: "n2", Parent: 1, Kind: schema.StepKindImport, Label: "import db", Line: 1},
			{ID: 3, SID: "n3", Parent: 1, Kind: schema.StepKindClass, Label: "class Order", Line: 4},
			{ID: 4, SID: "n4", Parent: 1, Kind: schema.StepKindDefine, Label: "def process(order)", Line: 12},
			{ID: 5, SID: "n5", Parent: 4, Kind: schema.StepKindCondition, Label: "if order.in_stock", Line: 13},
			{ID: 6, SID: "n6", Parent: 5, Kind: schema.StepKindLoop, Label: "for item in order.items", Line: 14},
			{ID: 7, SID: "n7", Parent: 6, Kind: schema.StepKindCall, Label: "charge(item)", Line: 15},
			{ID: 8, SID: "n8", Parent: 5, Kind: schema.StepKindReturn, Label: "return receipt", Line: 17},
		},
	}

	model := diagram.FromTrace(trace)

	outDir := filepath.Join("docs", "assets")
	os.MkdirAll(outDir, 0o755)

	// ASCII
	ascii := diagram.RenderASCII(model)
	os.WriteFile(filepath.Join(outDir, "diagram-ascii.txt"), []byte(ascii), 0o644)
	fmt.Println("=== ASCII ===")
	fmt.Println(ascii)

	// Mermaid
	mermaid := diagram.RenderMermaid(model)
	os.WriteFile(filepath.Join(outDir, "diagram-mermaid.md"), []byte("```mermaid\n"+mermaid+"\n```\n"), 0o644)
	fmt.Println("=== Mermaid ===")
	fmt.Println(mermaid)

	// Image (PNG)
	png, err := diagram.RenderPNG(context.Background(), model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "image error: %v\n", err)
		os.Exit(1)
	}
	pngPath := filepath.Join(outDir, "diagram-sample.png")
	os.WriteFile(pngPath, png, 0o644)
	fmt.Printf("=== Image (PNG) ===\nWritten: %s (%d bytes)\n", pngPath, len(png))
}
