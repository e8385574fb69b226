package api

type Attributes struct {
	// Total Star rating, visible on osu!'s beatmap page
	Total float64 `yaml:"star_rating" json:"star_rating"`

	// Aim stars, needed for Performance Points (aka PP) calculations
	Aim float64 `yaml:"aim" json:"aim"`

	// Speed stars, needed for Performance Points (aka PP) calculations
	Speed float64 `yaml:"speed" json:"speed"`

	SpeedNoteCount float64 `yaml:"speed_note_count" json:"speed_note_count"`

	// SliderFactor is a ratio of Aim calculated without sliders to Aim with them
	SliderFactor float64 `yaml:"slider_factor" json:"slider_factor"`

	AimDifficultStrainCount   float64 `yaml:"aim_difficult_strain_count" json:"aim_difficult_strain_count"`
	SpeedDifficultStrainCount float64 `yaml:"speed_difficult_strain_count" json:"speed_difficult_strain_count"`

	// Display values with the clock rate applied
	ApproachRate      float64 `yaml:"approach_rate" json:"approach_rate"`
	OverallDifficulty float64 `yaml:"overall_difficulty" json:"overall_difficulty"`
	DrainRate         float64 `yaml:"drain_rate" json:"drain_rate"`

	ObjectCount int `yaml:"object_count" json:"object_count"`
	Circles     int `yaml:"circles" json:"circles"`
	Sliders     int `yaml:"sliders" json:"sliders"`
	Spinners    int `yaml:"spinners" json:"spinners"`
	MaxCombo    int `yaml:"max_combo" json:"max_combo"`
}

// StrainPeaks contains peaks of Aim and Speed skills, as well as peaks passed through star rating formula
type StrainPeaks struct {
	// Aim peaks
	Aim []float64 `yaml:"aim" json:"aim"`

	// Speed peaks
	Speed []float64 `yaml:"speed" json:"speed"`

	// Total contains aim and speed peaks passed through star rating formula
	Total []float64 `yaml:"total" json:"total"`
}
