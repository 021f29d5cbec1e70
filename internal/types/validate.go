package types

import "github.com/go-playground/validator/v10"

// validate is shared; a Validate instance caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Validate validates the OptimizationRequest using the validator.
func (r *OptimizationRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SaveOptimizationRequest using the validator.
func (r *SaveOptimizationRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GitHubAnalyzeRequest using the validator.
func (r *GitHubAnalyzeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExportRequest using the validator.
func (r *ExportRequest) Validate() error {
	return validate.Struct(r)
}
