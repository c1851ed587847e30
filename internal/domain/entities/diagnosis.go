package entities

// Facility is a nearby medical facility candidate. The external source
// does not supply ratings, so Rating is always "N/A".
type Facility struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Rating  string `json:"rating"`
}

// Diagnosis is the per-request response envelope for the chat endpoint.
// It is ephemeral and never persisted.
type Diagnosis struct {
	Diagnosis       string     `json:"diagnosis"`
	Medicine        string     `json:"medicine"`
	Disclaimer      string     `json:"disclaimer"`
	NearbyHospitals []Facility `json:"nearby_hospitals"`
}
