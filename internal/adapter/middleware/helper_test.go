package middleware

import "testing"

func TestValidReqID(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0f1e2d3c4b5a69788796a5b4c3d2e1f0", true},
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"req_2024_08", true},
		{"short", false},
		{"", false},
		{"has space in it", false},
		{"bad!chars$here", false},
	}
	for _, tc := range cases {
		if got := validReqID(tc.in); got != tc.ok {
			t.Errorf("validReqID(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestBuildKey(t *testing.T) {
	got := buildKey("POST", "/installments/:id/payments", "cashier-7", "abc12345")
	want := "idemp:POST:/installments/:id/payments:cashier-7:abc12345"
	if got != want {
		t.Errorf("buildKey = %q, want %q", got, want)
	}
}
