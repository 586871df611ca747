package notification

type CreateNotificationRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Type    string `json:"type" binding:"required,oneof=info success warning error"`
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message,omitempty"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}
