package pattern

import (
	"testing"
	"time"

	"github.com/queryx/queryd/internal/clock"
)

func TestBulkFirstMatch(t *testing.T) {
	texts := []string{"call support@example.com", "no email here", "bob@test.org wrote"}
	resp := BulkFirstMatch(`\b\w+@\w+\.\w+\b`, nil, texts)

	if !resp.Success {
		t.Fatalf("BulkFirstMatch() failed: %s", resp.Error)
	}
	if resp.TotalTexts != 3 || resp.SuccessfulOperations != 3 || resp.FailedOperations != 0 {
		t.Errorf("counts = %d/%d/%d, want 3/3/0",
			resp.TotalTexts, resp.SuccessfulOperations, resp.FailedOperations)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(resp.Results))
	}
	for i, r := range resp.Results {
		if r.TextIndex != i {
			t.Errorf("result %d has text_index %d", i, r.TextIndex)
		}
		if r.Text != texts[i] {
			t.Errorf("result %d does not echo its input text", i)
		}
	}
	if resp.Results[0].Match == nil || resp.Results[0].Match.Match != "support@example.com" {
		t.Error("first text should match support@example.com")
	}
	if resp.Results[1].Match != nil {
		t.Error("second text has no email, match should be nil")
	}
	if resp.Results[2].Match == nil || resp.Results[2].Match.Match != "bob@test.org" {
		t.Error("third text should match bob@test.org")
	}
}

func TestBulkCompileFailureShortCircuits(t *testing.T) {
	texts := []string{"a", "b", "c", "d"}

	t.Run("match", func(t *testing.T) {
		resp := BulkFirstMatch("[invalid", nil, texts)
		if resp.Success {
			t.Error("Success = true for invalid pattern")
		}
		if resp.SuccessfulOperations != 0 || resp.FailedOperations != len(texts) {
			t.Errorf("counts = %d/%d, want 0/%d",
				resp.SuccessfulOperations, resp.FailedOperations, len(texts))
		}
		if len(resp.Results) != 0 {
			t.Errorf("results should be empty on compile failure, got %d", len(resp.Results))
		}
		if resp.Error == "" {
			t.Error("aggregate error should be set")
		}
	})

	t.Run("findall", func(t *testing.T) {
		resp := BulkFindAll("[invalid", nil, texts)
		if resp.Success || len(resp.Results) != 0 || resp.FailedOperations != len(texts) || resp.TotalMatches != 0 {
			t.Errorf("unexpected shape: %+v", resp)
		}
	})

	t.Run("substitute", func(t *testing.T) {
		resp := BulkSubstitute("[invalid", nil, "r", texts, 0)
		if resp.Success || len(resp.Results) != 0 || resp.FailedOperations != len(texts) || resp.TotalSubstitutions != 0 {
			t.Errorf("unexpected shape: %+v", resp)
		}
	})

	t.Run("split", func(t *testing.T) {
		resp := BulkSplit("[invalid", nil, texts, 0)
		if resp.Success || len(resp.Results) != 0 || resp.FailedOperations != len(texts) || resp.TotalSplits != 0 {
			t.Errorf("unexpected shape: %+v", resp)
		}
	})
}

func TestBulkFindAllAggregates(t *testing.T) {
	resp := BulkFindAll(`\d+`, nil, []string{"1 2 3", "none", "44 55"})
	if !resp.Success {
		t.Fatalf("BulkFindAll() failed: %s", resp.Error)
	}
	if resp.TotalMatches != 5 {
		t.Errorf("TotalMatches = %d, want 5", resp.TotalMatches)
	}
	if resp.Results[1].Count != 0 || len(resp.Results[1].Matches) != 0 {
		t.Error("matchless text should report an empty match list, not a failure")
	}
	if !resp.Results[1].Success {
		t.Error("zero matches is still a per-item success")
	}
}

func TestBulkSubstituteAggregates(t *testing.T) {
	resp := BulkSubstitute(`o`, nil, "0", []string{"foo", "bar", "moo"}, 0)
	if !resp.Success {
		t.Fatalf("BulkSubstitute() failed: %s", resp.Error)
	}
	if resp.TotalSubstitutions != 4 {
		t.Errorf("TotalSubstitutions = %d, want 4", resp.TotalSubstitutions)
	}
	if resp.Results[0].ResultText != "f00" {
		t.Errorf("first result = %q, want %q", resp.Results[0].ResultText, "f00")
	}
	if resp.Results[1].ResultText != "bar" || resp.Results[1].SubstitutionsMade != 0 {
		t.Error("text without matches should pass through unchanged")
	}
}

func TestBulkSubstituteTemplateErrorIsolatedPerItem(t *testing.T) {
	// The pattern compiles, so the batch is not short-circuited; the
	// invalid group reference fails each item individually instead.
	resp := BulkSubstitute(`(a)`, nil, `\2`, []string{"aa", "b"}, 0)
	if !resp.Success {
		t.Fatal("pattern compiled, aggregate success should be true")
	}
	if resp.SuccessfulOperations != 0 || resp.FailedOperations != 2 {
		t.Errorf("counts = %d/%d, want 0/2", resp.SuccessfulOperations, resp.FailedOperations)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results should be populated per item, got %d", len(resp.Results))
	}
	for i, r := range resp.Results {
		if r.Success || r.Error == "" {
			t.Errorf("result %d should carry its own failure", i)
		}
		if r.ResultText != r.Text {
			t.Errorf("result %d should fall back to the original text", i)
		}
	}
	if resp.TotalSubstitutions != 0 {
		t.Error("failed items must not contribute to aggregates")
	}
}

func TestBulkSplitAggregates(t *testing.T) {
	resp := BulkSplit(`,`, nil, []string{"a,b,c", "x", ""}, 0)
	if !resp.Success {
		t.Fatalf("BulkSplit() failed: %s", resp.Error)
	}
	if resp.TotalSplits != 2 {
		t.Errorf("TotalSplits = %d, want 2", resp.TotalSplits)
	}
	if len(resp.Results[2].Parts) != 1 || resp.Results[2].Parts[0] != "" {
		t.Errorf("empty text should split to [\"\"], got %v", resp.Results[2].Parts)
	}
}

func TestBulkProcessingTimeUsesClock(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	restore := clock.SetNowForTest(func() time.Time {
		calls++
		if calls > 1 {
			return base.Add(250 * time.Millisecond)
		}
		return base
	})
	defer restore()

	resp := BulkFindAll(`a`, nil, []string{"aaa"})
	if resp.ProcessingTimeMS != 250 {
		t.Errorf("ProcessingTimeMS = %v, want 250", resp.ProcessingTimeMS)
	}
}

func TestBulkEmptyTexts(t *testing.T) {
	resp := BulkFirstMatch(`a`, nil, nil)
	if !resp.Success || resp.TotalTexts != 0 || len(resp.Results) != 0 {
		t.Errorf("empty input should succeed with zero totals: %+v", resp)
	}
}
