package locate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		path := filepath.Join(dir, n)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestSupportedExt(t *testing.T) {
	for _, ext := range []string{".pdf", ".PDF", ".txt", ".doc", ".docx", ".epub"} {
		if !SupportedExt(ext) {
			t.Errorf("SupportedExt(%q) = false", ext)
		}
	}
	for _, ext := range []string{".exe", ".png", "", ".md"} {
		if SupportedExt(ext) {
			t.Errorf("SupportedExt(%q) = true", ext)
		}
	}
}

func TestSearchExactSubstringFirst(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "biology_report.pdf", "chemistry.pdf", "report_2024.txt")

	got := NewLocator().Search("report", dir, 5)

	if len(got) < 2 {
		t.Fatalf("got %d candidates, want at least the two exact matches", len(got))
	}
	exact := 0
	for _, c := range got {
		if strings.Contains(strings.ToLower(c.Name), "report") {
			if c.Score != 100 {
				t.Errorf("exact match %q scored %d, want 100", c.Name, c.Score)
			}
			exact++
		}
	}
	if exact != 2 {
		t.Errorf("exact matches = %d, want 2", exact)
	}
	// Exact hits sort before any fuzzy hit.
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results not sorted by score descending: %+v", got)
		}
	}
}

func TestSearchFuzzyTypo(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "presentaton_guide.pdf", "quarterly_budget.pdf")

	got := NewLocator().Search("presentation guide", dir, 5)

	if len(got) == 0 {
		t.Fatal("expected a fuzzy candidate despite the typo")
	}
	if got[0].Name != "presentaton_guide.pdf" {
		t.Fatalf("top candidate = %q, want presentaton_guide.pdf", got[0].Name)
	}
	if got[0].Score >= 100 || got[0].Score <= 35 {
		t.Errorf("fuzzy score = %d, want within (35, 100)", got[0].Score)
	}
}

func TestSearchRespectsLimitAndDedupes(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"notes_a.txt", "notes_b.txt", "notes_c.txt",
		"notes_d.txt", "notes_e.txt", "notes_f.txt",
	)

	got := NewLocator().Search("notes", dir, 3)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c.Path] {
			t.Fatalf("duplicate path %q", c.Path)
		}
		seen[c.Path] = true
		if !strings.HasPrefix(c.Path, dir) {
			t.Errorf("path %q escapes the search root", c.Path)
		}
	}
}

func TestSearchSkipsJunkDirs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"keep.pdf",
		filepath.Join("node_modules", "dep.pdf"),
		filepath.Join(".hidden", "secret.pdf"),
	)

	got := NewLocator().Search("pdf", dir, 10)

	for _, c := range got {
		if strings.Contains(c.Path, "node_modules") || strings.Contains(c.Path, ".hidden") {
			t.Errorf("junk directory leaked into results: %q", c.Path)
		}
	}
}

func TestSearchAllMergesRoots(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeFiles(t, dirA, "thesis_draft.pdf")
	writeFiles(t, dirB, "thesis_final.pdf")

	got := NewLocator().SearchAll("thesis", []string{dirA, dirB, "/does/not/exist"})

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, c := range got {
		if c.Score != 100 {
			t.Errorf("%q scored %d, want 100", c.Name, c.Score)
		}
	}
}

func TestListDirNonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.pdf", "b.txt", "ignored.png", filepath.Join("sub", "nested.pdf"))

	got := NewLocator().ListDir(dir)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (no recursion, unsupported skipped)", len(got))
	}
	for _, c := range got {
		if c.Name == "nested.pdf" || c.Name == "ignored.png" {
			t.Errorf("unexpected entry %q", c.Name)
		}
	}
}

func TestListDirMissing(t *testing.T) {
	if got := NewLocator().ListDir("/does/not/exist"); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
