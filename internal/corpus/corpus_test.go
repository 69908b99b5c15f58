package corpus

import "testing"

func TestTechTips(t *testing.T) {
	docs := TechTips()

	if len(docs) != 20 {
		t.Fatalf("expected 20 documents, got %d", len(docs))
	}

	seen := make(map[string]bool, len(docs))
	categories := make(map[string]int)
	for i, doc := range docs {
		if doc.ID == "" || seen[doc.ID] {
			t.Errorf("document %d: duplicate or empty ID %q", i, doc.ID)
		}
		seen[doc.ID] = true

		if doc.Text == "" {
			t.Errorf("document %s: empty text", doc.ID)
		}
		cat := doc.Metadata["category"]
		if cat == "" {
			t.Errorf("document %s: missing category", doc.ID)
		}
		categories[cat]++
	}

	if docs[0].ID != "doc_0" || docs[19].ID != "doc_19" {
		t.Errorf("unexpected ID scheme: %s .. %s", docs[0].ID, docs[19].ID)
	}

	for _, cat := range []string{"Docker", "Python", "AWS"} {
		if categories[cat] == 0 {
			t.Errorf("expected documents in category %s", cat)
		}
	}
}

func TestTechTips_Stable(t *testing.T) {
	a, b := TechTips(), TechTips()
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Text != b[i].Text {
			t.Fatalf("corpus not stable at index %d", i)
		}
	}
}
