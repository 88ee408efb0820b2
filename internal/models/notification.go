package models

// Notification is one outbound email to clinic staff.
type Notification struct {
	From       string
	To         string
	Subject    string
	HTML       string
	Attachment *Attachment
}

type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}
