package models

// PredictRequest is the query of GET /predict.
type PredictRequest struct {
	Ticker string `query:"ticker" json:"ticker" default:"AAPL" validate:"required,max=32,printascii"`
}
