package dict

import (
	"errors"
	"strings"
	"testing"
)

func TestParseTier(t *testing.T) {
	input := strings.Join([]string{
		"# character tier",
		"龙\t龍",
		"",
		"干\t乾 幹 干",
		"只 只 隻", // space-delimited fallback
	}, "\n")

	tier, err := ParseTier("STCharacters.txt", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTier: %v", err)
	}
	if len(tier.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(tier.Entries))
	}

	long := tier.Entries[1]
	if long.Source != "干" || len(long.Candidates) != 3 {
		t.Fatalf("unexpected entry: %+v", long)
	}
	if long.Candidates[0] != (Candidate{Target: "乾", Rank: 0}) {
		t.Errorf("rank 0 candidate = %+v, want 乾", long.Candidates[0])
	}
	if long.Candidates[2] != (Candidate{Target: "干", Rank: 2}) {
		t.Errorf("rank 2 candidate = %+v, want 干", long.Candidates[2])
	}

	spaced := tier.Entries[2]
	if spaced.Source != "只" || len(spaced.Candidates) != 2 {
		t.Fatalf("space-delimited entry parsed wrong: %+v", spaced)
	}
}

func TestParseTierErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
	}{
		{"missing candidate column", "龙", 1},
		{"empty candidate list", "龙\t", 1},
		{"duplicate key", "龙\t龍\n龙\t竜", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTier("bad.txt", strings.NewReader(tc.input))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("got %v, want ParseError", err)
			}
			if parseErr.File != "bad.txt" || parseErr.Line != tc.line {
				t.Errorf("error location = %s:%d, want bad.txt:%d", parseErr.File, parseErr.Line, tc.line)
			}
		})
	}
}

func TestReversed(t *testing.T) {
	tier := &Tier{
		Name: "TSCharacters",
		Entries: []Entry{
			{Source: "發", Candidates: []Candidate{{Target: "发", Rank: 0}}},
			{Source: "髮", Candidates: []Candidate{{Target: "发", Rank: 0}}},
			{Source: "龍", Candidates: []Candidate{{Target: "龙", Rank: 0}}},
		},
	}
	rev := tier.Reversed()
	if rev.Name != "!TSCharacters" {
		t.Errorf("name = %q", rev.Name)
	}
	// 發 and 髮 collide on 发; the first occurrence wins.
	if len(rev.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(rev.Entries))
	}
	if rev.Entries[0].Source != "发" || rev.Entries[0].Candidates[0].Target != "發" {
		t.Errorf("unexpected reversed entry: %+v", rev.Entries[0])
	}
	if rev.Entries[1].Source != "龙" || rev.Entries[1].Candidates[0].Target != "龍" {
		t.Errorf("unexpected reversed entry: %+v", rev.Entries[1])
	}
}

func TestEntryValidate(t *testing.T) {
	ok := Entry{Source: "龍", Candidates: []Candidate{{Target: "龙"}}}
	if err := ok.Validate(); err != nil {
		t.Errorf("valid entry rejected: %v", err)
	}
	for _, bad := range []Entry{
		{Source: "", Candidates: []Candidate{{Target: "龙"}}},
		{Source: "龍"},
		{Source: "龍", Candidates: []Candidate{{Target: ""}}},
	} {
		if err := bad.Validate(); err == nil {
			t.Errorf("invalid entry accepted: %+v", bad)
		}
	}
}
