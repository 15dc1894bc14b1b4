package domain

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		hostname string
		pathname string
		want     NormalizedURL
	}{
		{
			name:     "lower-cases both parts",
			hostname: "Example.COM",
			pathname: "/Some/Path",
			want:     NormalizedURL{Hostname: "example.com", Pathname: "/some/path"},
		},
		{
			name:     "strips leading www",
			hostname: "www.example.com",
			pathname: "/",
			want:     NormalizedURL{Hostname: "example.com", Pathname: "/"},
		},
		{
			name:     "keeps www mid-string",
			hostname: "my.www.example.com",
			pathname: "",
			want:     NormalizedURL{Hostname: "my.www.example.com", Pathname: ""},
		},
		{
			name:     "strips only one www",
			hostname: "www.www.example.com",
			pathname: "",
			want:     NormalizedURL{Hostname: "www.example.com", Pathname: ""},
		},
		{
			name:     "empty input",
			hostname: "",
			pathname: "",
			want:     NormalizedURL{},
		},
		{
			name:     "trailing dots removed",
			hostname: "example.com.",
			pathname: "/x",
			want:     NormalizedURL{Hostname: "example.com", Pathname: "/x"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.hostname, tc.pathname)
			if got != tc.want {
				t.Errorf("Normalize(%q, %q) = %+v, want %+v", tc.hostname, tc.pathname, got, tc.want)
			}
		})
	}
}

func TestNormalizedURL_Key(t *testing.T) {
	a := Normalize("a.com", "/x")
	b := Normalize("a.com", "/y")
	if a.Key() == b.Key() {
		t.Errorf("distinct URLs must have distinct keys: %q", a.Key())
	}
}
