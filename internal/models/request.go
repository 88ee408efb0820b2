package models

// AppointmentSubmission is the booking form posted by the website.
type AppointmentSubmission struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Treatment  string `json:"treatment" validate:"required"`
	Doctor     string `json:"doctor" validate:"required"`
	Date       string `json:"date" validate:"required"`
	TimeHour   string `json:"timeHour" validate:"required"`
	TimePeriod string `json:"timePeriod" validate:"required"`
}

// Time joins the hour and period fields the way staff read them, e.g. "10 AM".
func (a AppointmentSubmission) Time() string {
	return a.TimeHour + " " + a.TimePeriod
}

// ContactSubmission is the contact form posted by the website.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// APIResponse is the body of every JSON response.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
