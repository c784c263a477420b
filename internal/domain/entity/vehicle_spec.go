package entity

// VehicleSpec is the structured technical sheet attached to an article.
// All fields are free-form strings because the backend stores them as
// entered by editors (units and formatting vary per market).
type VehicleSpec struct {
	ID           int64             `json:"id"`
	ArticleID    int64             `json:"article_id"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	Year         string            `json:"year,omitempty"`
	Engine       string            `json:"engine,omitempty"`
	Power        string            `json:"power,omitempty"`
	Torque       string            `json:"torque,omitempty"`
	Transmission string            `json:"transmission,omitempty"`
	Drivetrain   string            `json:"drivetrain,omitempty"`
	Acceleration string            `json:"acceleration,omitempty"`
	TopSpeed     string            `json:"top_speed,omitempty"`
	Weight       string            `json:"weight,omitempty"`
	Price        string            `json:"price,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// IsEmpty reports whether the sheet has no content worth rendering.
func (v *VehicleSpec) IsEmpty() bool {
	return v.Make == "" && v.Model == "" && v.Engine == "" && v.Power == "" &&
		v.Torque == "" && v.Transmission == "" && v.Drivetrain == "" &&
		v.Acceleration == "" && v.TopSpeed == "" && v.Weight == "" &&
		v.Price == "" && len(v.Extra) == 0
}

// Validate checks spec fields before submitting to the backend.
// Make and Model anchor the sheet; everything else is optional.
func (v *VehicleSpec) Validate() error {
	if v.Make == "" {
		return &ValidationError{Field: "make", Message: "make is required"}
	}
	if v.Model == "" {
		return &ValidationError{Field: "model", Message: "model is required"}
	}
	return nil
}
