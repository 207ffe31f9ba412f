package model

type ConvertResponse struct {
	RequestId string `json:"request_id"`
	Output    Output `json:"output"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
