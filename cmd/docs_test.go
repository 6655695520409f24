package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra/doc"
)

func Test_filePrepender(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     []string
	}{
		{"root", filepath.Join("docs", "qdenovo.md"), []string{"title: qdenovo", "permalink: /"}},
		{"child", filepath.Join("docs", "qdenovo_batch.md"), []string{"title: batch", "parent: qdenovo", "nav_order: 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filePrepender(tt.filename)
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("filePrepender() = %v, missing %v", got, want)
				}
			}
		})
	}
}

func Test_linkHandler(t *testing.T) {
	if got := linkHandler("qdenovo.md"); got != "/" {
		t.Errorf("linkHandler() = %v, want /", got)
	}
	if got := linkHandler("qdenovo_solve.md"); got != "qdenovo_solve" {
		t.Errorf("linkHandler() = %v, want qdenovo_solve", got)
	}
}

func TestDocs(t *testing.T) {
	dir := t.TempDir()
	if err := doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler); err != nil {
		t.Fatal(err)
	}

	for _, page := range []string{"qdenovo.md", "qdenovo_solve.md", "qdenovo_batch.md", "qdenovo_qubo.md", "qdenovo_ising.md", "qdenovo_overlap.md"} {
		if _, err := os.Stat(filepath.Join(dir, page)); err != nil {
			t.Errorf("docs are missing %s: %v", page, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "qdenovo_docs.md")); err == nil {
		t.Error("docs include the hidden docs command")
	}
}
