package models

// Advisory is a non-blocking validation warning. Mutations that trip one are
// still stored; the presentation layer decides how loudly to surface it.
type Advisory struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	// Index points at the offending element for slice-valued fields, -1 or 0
	// being conventional for scalar fields.
	Index int `json:"index,omitempty"`
}
