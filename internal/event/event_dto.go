package event

type CreateEventRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	EventType    string `json:"event_type" binding:"required,oneof=after_work all_hands celebration training other"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Description  string `json:"description"`
	Visibility   string `json:"visibility" binding:"omitempty,oneof=team department all custom"`
	RsvpRequired bool   `json:"rsvp_required"`
}

type SubmitRsvpRequest struct {
	Response string `json:"response" binding:"required,oneof=attending maybe not_attending"`
}

type EventResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	EventType    string `json:"event_type"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Description  string `json:"description,omitempty"`
	CreatedBy    string `json:"created_by"`
	CreatorName  string `json:"creator_name,omitempty"`
	Visibility   string `json:"visibility"`
	RsvpRequired bool   `json:"rsvp_required"`
	CreatedAt    string `json:"created_at"`
}

type RsvpResponse struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name,omitempty"`
	Response    string `json:"response"`
	RespondedAt string `json:"responded_at"`
}
