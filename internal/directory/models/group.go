package models

// Group is a named transverse collection of persons, independent of the unit
// hierarchy. Membership is denormalized on each person's group-name set; a
// group's member count is always derived by scanning persons, never stored
// here. Names are unique (case-sensitive) across the system.
type Group struct {
	Name string `json:"name"`
	// MailingList is the address of the linked diffusion list (SYMPA).
	MailingList string `json:"mailing_list,omitempty"`
	Description string `json:"description,omitempty"`
}
