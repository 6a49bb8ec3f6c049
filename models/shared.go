package models

// ReminderPayload is the queued message for an upcoming-booking reminder.
type ReminderPayload struct {
	TicketID string `json:"ticketId"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	FireDate string `json:"fireDate"`
}
