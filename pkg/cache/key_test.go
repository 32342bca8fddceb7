package cache

import (
	"strings"
	"testing"
)

func TestOverpassKey(t *testing.T) {
	key := OverpassKey(`[out:json];way["building"](50.6,7.0,50.8,7.3);out;`)

	if !strings.HasPrefix(key, "overpass:") {
		t.Errorf("OverpassKey missing prefix: %s", key)
	}

	hash := strings.TrimPrefix(key, "overpass:")
	if len(hash) != 16 {
		t.Errorf("OverpassKey hash length = %d, want 16", len(hash))
	}
	for _, c := range hash {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("OverpassKey hash contains non-hex character %q", c)
		}
	}
}

func TestOverpassKey_DistinctQueries(t *testing.T) {
	a := OverpassKey(`[out:json];node(1);out;`)
	b := OverpassKey(`[out:json];node(2);out;`)
	if a == b {
		t.Errorf("distinct queries produced the same key %s", a)
	}
}

func TestClimateKey(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lng  float64
		want string
	}{
		{
			name: "exact two decimals",
			lat:  37.77,
			lng:  -122.42,
			want: "climate:37.77:-122.42",
		},
		{
			name: "rounds down extra precision",
			lat:  37.774,
			lng:  -122.419,
			want: "climate:37.77:-122.42",
		},
		{
			name: "rounds up extra precision",
			lat:  37.7751,
			lng:  -122.4251,
			want: "climate:37.78:-122.43",
		},
		{
			name: "trailing zero dropped",
			lat:  37.70,
			lng:  10.10,
			want: "climate:37.7:10.1",
		},
		{
			name: "integral coordinates",
			lat:  0,
			lng:  -45,
			want: "climate:0:-45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClimateKey(tt.lat, tt.lng)
			if got != tt.want {
				t.Errorf("ClimateKey(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}

// TestClimateKey_GridInvariance ensures inputs differing only beyond
// the 2nd decimal place map to the same cache entry.
func TestClimateKey_GridInvariance(t *testing.T) {
	base := ClimateKey(37.77, -122.42)
	variants := [][2]float64{
		{37.774, -122.419},
		{37.7749, -122.4204},
		{37.766, -122.4239},
	}

	for _, v := range variants {
		if got := ClimateKey(v[0], v[1]); got != base {
			t.Errorf("ClimateKey(%v, %v) = %v, want %v", v[0], v[1], got, base)
		}
	}
}

func TestCanopyKey(t *testing.T) {
	if got := CanopyKey("0231"); got != "canopy:0231" {
		t.Errorf("CanopyKey(0231) = %v, want canopy:0231", got)
	}
}

// TestKey_Determinism ensures the same input always produces the same key.
func TestKey_Determinism(t *testing.T) {
	query := `[out:json];way["building"](50.6,7.0,50.8,7.3);out;`
	first := OverpassKey(query)
	for i := 0; i < 10; i++ {
		if got := OverpassKey(query); got != first {
			t.Fatalf("OverpassKey not deterministic: %v != %v", got, first)
		}
	}
}
