package extract

import (
	"testing"
)

func TestStripMarkup(t *testing.T) {
	t.Parallel()

	raw := `<p>AB123 TEX 12</p><br>CD456&nbsp;5<li>done</li>`
	got := StripMarkup(raw)

	want := "AB123 TEX 12\nCD456 5\ndone"
	if got != want {
		t.Fatalf("unexpected strip result: %q", got)
	}
}

func TestTokenizeFlattensMarkup(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("<p>AB123 TEX 12</p><br><br>CD456&nbsp;7")
	want := []string{"AB123", "TEX", "12", "CD456", "7"}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, token := range tokens {
		if token != want[i] {
			t.Fatalf("token %d: expected %q, got %q", i, want[i], token)
		}
	}
}

func TestExtractBasicBlock(t *testing.T) {
	t.Parallel()

	res := Extract("ID1 TEX 12 01/02/2024 10:00")

	if !res.HasArticles {
		t.Fatal("expected articles to be found")
	}
	if len(res.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(res.Articles))
	}
	if res.Articles[0].ArticleID != "ID1" || res.Articles[0].Pages != 12 {
		t.Fatalf("unexpected article: %+v", res.Articles[0])
	}
	if res.TotalPages != 12 {
		t.Fatalf("expected total 12, got %d", res.TotalPages)
	}
}

func TestExtractHyphenPlaceholderDropsArticle(t *testing.T) {
	t.Parallel()

	res := Extract("ID1 -")

	if res.HasArticles {
		t.Fatalf("expected no articles, got %v", res.Articles)
	}
	if res.TotalPages != 0 {
		t.Fatalf("expected zero total, got %d", res.TotalPages)
	}
}

func TestExtractEMFCMarkerDropsArticle(t *testing.T) {
	t.Parallel()

	res := Extract("ID1 eMFC 34")

	if res.HasArticles {
		t.Fatalf("expected no articles, got %v", res.Articles)
	}
}

func TestExtractKeepsExplicitZeroPages(t *testing.T) {
	t.Parallel()

	res := Extract("AB123 TEX 0 01/02/2024 09:30")

	if len(res.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(res.Articles))
	}
	if res.Articles[0].Pages != 0 {
		t.Fatalf("expected zero pages kept, got %d", res.Articles[0].Pages)
	}
	if res.TotalPages != 0 {
		t.Fatalf("expected zero total, got %d", res.TotalPages)
	}
}

func TestExtractRejectsOutOfRangePageCount(t *testing.T) {
	t.Parallel()

	res := Extract("AB123 TEX 10001")
	if res.HasArticles {
		t.Fatalf("expected out-of-range count to be rejected, got %v", res.Articles)
	}

	res = Extract("AB123 TEX 10000")
	if !res.HasArticles || res.Articles[0].Pages != 10000 {
		t.Fatalf("expected boundary count to be kept, got %v", res.Articles)
	}
}

func TestExtractDuplicateIDFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	res := Extract("AB123 TEX 12 01/02/2024 10:00 ab123 TEX 99 01/02/2024 11:00")

	if len(res.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(res.Articles))
	}
	if res.Articles[0].ArticleID != "AB123" || res.Articles[0].Pages != 12 {
		t.Fatalf("unexpected article: %+v", res.Articles[0])
	}
}

func TestExtractMultipleBlocks(t *testing.T) {
	t.Parallel()

	raw := "AB123 TEX 12 01/02/2024 10:00 CD456 DOC 3 01/02/2024 10:05 EF789 -"
	res := Extract(raw)

	if len(res.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %v", len(res.Articles), res.Articles)
	}
	if res.Articles[0].ArticleID != "AB123" || res.Articles[1].ArticleID != "CD456" {
		t.Fatalf("unexpected order: %v", res.Articles)
	}
	if res.TotalPages != 15 {
		t.Fatalf("expected total 15, got %d", res.TotalPages)
	}
}

func TestExtractIDDirectlyFollowedByNextID(t *testing.T) {
	t.Parallel()

	// AB123 has no page count; CD456 right after it must still be detected.
	res := Extract("AB123 CD456 7")

	if len(res.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d: %v", len(res.Articles), res.Articles)
	}
	if res.Articles[0].ArticleID != "CD456" || res.Articles[0].Pages != 7 {
		t.Fatalf("unexpected article: %+v", res.Articles[0])
	}
}

func TestExtractTerminatorBoundsLookahead(t *testing.T) {
	t.Parallel()

	// The date+time pair closes the first block; the following ID opens a
	// fresh one even without its own terminator.
	raw := "AB123 TEX 12 x y 01/02/2024 10:00 CD456 5"
	res := Extract(raw)

	if len(res.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %v", len(res.Articles), res.Articles)
	}
	if res.Articles[1].ArticleID != "CD456" || res.Articles[1].Pages != 5 {
		t.Fatalf("unexpected second article: %+v", res.Articles[1])
	}
}

func TestExtractPlainTextWithoutMarkers(t *testing.T) {
	t.Parallel()

	res := Extract("nothing to see here 1234 5678")

	if res.HasArticles {
		t.Fatalf("expected no articles, got %v", res.Articles)
	}
}
