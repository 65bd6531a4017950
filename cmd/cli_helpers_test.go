package cmd

import "testing"

func TestJoinArgs(t *testing.T) {
	cases := []struct {
		in   []string
		want string
	}{
		{[]string{"one"}, "one"},
		{[]string{"a", "multi", "word", "phrase"}, "a multi word phrase"},
		{[]string{"  padded  "}, "padded"},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := joinArgs(tc.in); got != tc.want {
			t.Errorf("joinArgs(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
