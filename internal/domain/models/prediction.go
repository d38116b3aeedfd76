package models

// Prediction holds the raw latest close and the one-step-ahead forecast,
// both before any display transform.
type Prediction struct {
	LatestClose    float64
	PredictedClose float64
}

// ResponsePayload is the chart-ready result returned to callers. Dates and
// Closes are the same tail window, index-aligned.
type ResponsePayload struct {
	Ticker         string    `json:"ticker"`
	LatestClose    string    `json:"latest_close"`
	PredictedClose string    `json:"predicted_close"`
	Dates          []string  `json:"dates"`
	Closes         []float64 `json:"closes"`
}
