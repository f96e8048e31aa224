package types

import "time"

// PassResult reports one worker pass, whether driven by the in-process
// scheduler or an external invoker.
type PassResult struct {
	Success   bool      `json:"success"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}
