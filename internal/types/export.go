package types

// ExportRequest selects the resume and template for an export.
type ExportRequest struct {
	ResumeID string `json:"resume_id" validate:"required"`
	Template string `json:"template,omitempty"`
}

// TemplateInfo describes an export template.
type TemplateInfo struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	PreviewImage *string `json:"preview_image"`
}
