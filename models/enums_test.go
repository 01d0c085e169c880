package models

import "testing"

func TestNormalizeSector(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Santé", want: "Santé"},
		{in: "santé", want: "Santé"},
		{in: "Sant", want: "Santé"},
		{in: "Sante", want: "Santé"},
		{in: "  Santé  ", want: "Santé"},
		{in: "Education", want: "Éducation"},
		{in: "WASH", want: "Eau et assainissement"},
		{in: "Shelter", want: "Abris"},
		{in: "Protection", want: "Protection"},
		{in: "Unknown", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeSector(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeSector(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeSector(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeSector(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeProjectType(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "Humanitarian", want: TypeHumanitarian},
		{in: "humanitarian", want: TypeHumanitarian},
		{in: "Humanitaire", want: TypeHumanitarian},
		{in: "Development", want: TypeDevelopment},
		{in: "Développement", want: TypeDevelopment},
		{in: "Developpement", want: TypeDevelopment},
		{in: "Commercial", wantErr: true},
	}

	for _, tc := range cases {
		got, err := NormalizeProjectType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeProjectType(%q) expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeProjectType(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeProjectType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
