package signal

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		short Reading
		long  Reading
		want  Trend
	}{
		{"bullish", Reading{101, true}, Reading{100, true}, Bullish},
		{"bearish", Reading{99, true}, Reading{100, true}, Bearish},
		{"neutral", Reading{100, true}, Reading{100, true}, Neutral},
		{"short missing", Reading{0, false}, Reading{100, true}, Unavailable},
		{"long missing", Reading{101, true}, Reading{0, false}, Unavailable},
	}
	for _, tc := range cases {
		if got := Classify(tc.short, tc.long); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}
