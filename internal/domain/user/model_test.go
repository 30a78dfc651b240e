package user

import "testing"

func TestDefaultDisplayName(t *testing.T) {
	cases := map[string]string{
		"jane.doe@example.com": "jane.doe",
		"  bob@mail.test ":     "bob",
		"no-at-sign":           "no-at-sign",
		"":                     "",
	}
	for input, want := range cases {
		if got := DefaultDisplayName(input); got != want {
			t.Fatalf("DefaultDisplayName(%q)=%q want %q", input, got, want)
		}
	}
}

func TestSortByStanding(t *testing.T) {
	profiles := []Profile{
		{UserID: "u-4", DisplayName: "dee", TotalPoints: 10},
		{UserID: "u-2", DisplayName: "Ben", TotalPoints: 30},
		{UserID: "u-3", DisplayName: "ana", TotalPoints: 30},
		{UserID: "u-1", DisplayName: "ana", TotalPoints: 30},
	}
	SortByStanding(profiles)

	want := []string{"u-1", "u-3", "u-2", "u-4"}
	for i, id := range want {
		if profiles[i].UserID != id {
			t.Fatalf("position %d: got %s want %s", i, profiles[i].UserID, id)
		}
	}
}
