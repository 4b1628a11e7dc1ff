// Package devchart holds the film development time chart. The data is static:
// times are for 35mm film at 20°C, in minutes.
package devchart

import (
	"fmt"

	"darkroom/internal/models"
)

// Entry is a single chart cell: development time and developer dilution.
type Entry struct {
	Time     float64 `json:"time"`
	Dilution string  `json:"dilution"`
}

type comboKey struct {
	film      string
	developer string
	iso       int
}

// Supported film stocks and developers, by display name.
var (
	films = map[string]bool{
		"Tri-X 400":   true,
		"T-MAX 400":   true,
		"FOMAPAN 400": true,
		"RPX 400":     true,
		"HP5+ 400":    true,
	}
	developers = map[string]bool{
		"T-MAX Dev":     true,
		"Rodinal":       true,
		"Ilfosol 3":     true,
		"HC-110":        true,
		"Ilfotec LC-29": true,
	}
)

var chart = map[comboKey]Entry{
	{"Tri-X 400", "T-MAX Dev", 400}:     {6.0, "1+4"},
	{"Tri-X 400", "T-MAX Dev", 800}:     {7.25, "1+4"},
	{"Tri-X 400", "T-MAX Dev", 1600}:    {9.5, "1+4"},
	{"Tri-X 400", "Rodinal", 400}:       {13.0, "1+50"},
	{"Tri-X 400", "Rodinal", 800}:       {15.5, "1+50"},
	{"Tri-X 400", "Ilfosol 3", 400}:     {6.5, "1+9"},
	{"Tri-X 400", "Ilfosol 3", 800}:     {8.5, "1+9"},
	{"Tri-X 400", "HC-110", 400}:        {7.5, "B (1+31)"},
	{"Tri-X 400", "HC-110", 800}:        {9.0, "B (1+31)"},
	{"Tri-X 400", "HC-110", 1600}:       {11.5, "B (1+31)"},
	{"Tri-X 400", "Ilfotec LC-29", 400}: {9.0, "1+19"},
	{"Tri-X 400", "Ilfotec LC-29", 800}: {11.0, "1+19"},

	{"T-MAX 400", "T-MAX Dev", 400}:     {6.0, "1+4"},
	{"T-MAX 400", "T-MAX Dev", 800}:     {7.0, "1+4"},
	{"T-MAX 400", "T-MAX Dev", 1600}:    {8.5, "1+4"},
	{"T-MAX 400", "T-MAX Dev", 3200}:    {11.0, "1+4"},
	{"T-MAX 400", "Rodinal", 400}:       {14.0, "1+50"},
	{"T-MAX 400", "Rodinal", 800}:       {17.0, "1+50"},
	{"T-MAX 400", "Ilfosol 3", 400}:     {8.5, "1+9"},
	{"T-MAX 400", "HC-110", 400}:        {6.0, "B (1+31)"},
	{"T-MAX 400", "HC-110", 800}:        {7.5, "B (1+31)"},
	{"T-MAX 400", "Ilfotec LC-29", 400}: {8.0, "1+19"},

	{"FOMAPAN 400", "T-MAX Dev", 400}:     {6.0, "1+4"},
	{"FOMAPAN 400", "Rodinal", 400}:       {11.0, "1+50"},
	{"FOMAPAN 400", "Rodinal", 800}:       {14.0, "1+50"},
	{"FOMAPAN 400", "Ilfosol 3", 400}:     {5.5, "1+9"},
	{"FOMAPAN 400", "HC-110", 400}:        {6.0, "B (1+31)"},
	{"FOMAPAN 400", "Ilfotec LC-29", 400}: {7.5, "1+19"},

	{"RPX 400", "T-MAX Dev", 400}:     {7.0, "1+4"},
	{"RPX 400", "Rodinal", 400}:       {15.0, "1+50"},
	{"RPX 400", "Rodinal", 800}:       {18.0, "1+50"},
	{"RPX 400", "Ilfosol 3", 400}:     {9.5, "1+9"},
	{"RPX 400", "HC-110", 400}:        {7.0, "B (1+31)"},
	{"RPX 400", "Ilfotec LC-29", 400}: {8.0, "1+19"},

	{"HP5+ 400", "T-MAX Dev", 400}:      {6.5, "1+4"},
	{"HP5+ 400", "T-MAX Dev", 800}:      {8.0, "1+4"},
	{"HP5+ 400", "Rodinal", 400}:        {11.0, "1+50"},
	{"HP5+ 400", "Rodinal", 800}:        {13.0, "1+50"},
	{"HP5+ 400", "Ilfosol 3", 400}:      {6.5, "1+9"},
	{"HP5+ 400", "Ilfosol 3", 800}:      {9.0, "1+9"},
	{"HP5+ 400", "HC-110", 400}:         {5.0, "B (1+31)"},
	{"HP5+ 400", "HC-110", 800}:         {6.5, "B (1+31)"},
	{"HP5+ 400", "HC-110", 1600}:        {9.0, "B (1+31)"},
	{"HP5+ 400", "Ilfotec LC-29", 400}:  {6.5, "1+19"},
	{"HP5+ 400", "Ilfotec LC-29", 800}:  {8.5, "1+19"},
	{"HP5+ 400", "Ilfotec LC-29", 1600}: {11.5, "1+19"},
}

// Lookup resolves a film/developer/ISO combination. Unknown film or developer
// names are validation errors; a known pair without data at that ISO is not found.
func Lookup(film, developer string, iso int) (*Entry, error) {
	if !films[film] {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown film: %s", film))
	}
	if !developers[developer] {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown developer: %s", developer))
	}

	entry, ok := chart[comboKey{film, developer, iso}]
	if !ok {
		return nil, &models.AppError{Code: models.CodeNotFound, Message: "Development time not found"}
	}
	return &entry, nil
}
