package pipeline

import (
	"context"
	"path/filepath"
	"testing"
)

func TestExampleDocuments(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example documents found")
	}

	r := NewRunner(nil, nil, nil)
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			res, err := r.Execute(context.Background(), Options{
				DocumentPath: path,
				Formats:      []string{FormatSVG, FormatJSON},
				Strict:       true,
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			defer res.Widget.Dispose()
			if res.Stats.Drawn != res.Stats.Annotations {
				t.Errorf("drawn %d of %d annotations", res.Stats.Drawn, res.Stats.Annotations)
			}
			if len(res.Artifacts[FormatSVG]) == 0 {
				t.Error("empty SVG")
			}
		})
	}
}
