package models

import (
	"fmt"
	"strings"
)

// Project types
const (
	TypeHumanitarian = "Humanitarian"
	TypeDevelopment  = "Development"
)

// Sectors is the closed set of intervention sectors.
var Sectors = []string{
	"Santé",
	"Éducation",
	"Protection",
	"Sécurité alimentaire",
	"Eau et assainissement",
	"Abris",
}

// Legacy spellings still present in old partner submissions. Keys are
// lowercased before lookup.
var sectorAliases = map[string]string{
	"sant":                 "Santé",
	"sante":                "Santé",
	"education":            "Éducation",
	"securite alimentaire": "Sécurité alimentaire",
	"food security":        "Sécurité alimentaire",
	"eau":                  "Eau et assainissement",
	"wash":                 "Eau et assainissement",
	"abri":                 "Abris",
	"shelter":              "Abris",
}

var typeAliases = map[string]string{
	"humanitaire":   TypeHumanitarian,
	"developpement": TypeDevelopment,
	"développement": TypeDevelopment,
}

// NormalizeProjectType maps a submitted project type to its canonical value.
func NormalizeProjectType(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, canonical := range []string{TypeHumanitarian, TypeDevelopment} {
		if strings.EqualFold(trimmed, canonical) {
			return canonical, nil
		}
	}
	if canonical, ok := typeAliases[strings.ToLower(trimmed)]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("unknown project type %q", value)
}

// NormalizeSector maps a submitted sector, including recognized legacy
// spellings, to its canonical value.
func NormalizeSector(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, canonical := range Sectors {
		if strings.EqualFold(trimmed, canonical) {
			return canonical, nil
		}
	}
	if canonical, ok := sectorAliases[strings.ToLower(trimmed)]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("unknown sector %q", value)
}
