package flow

func (r *Router) contactInfo(sessionID string) Response {
	c := r.content.Contact()
	return Response{
		SessionID: sessionID,
		Messages: []string{
			"Here is the official contact information for Geeta University:",
			"Phone: " + c.Phone,
			"Email: " + c.Email,
			"Address: " + c.Address,
		},
		Buttons:   []Button{{Label: "Back to Main Menu", Token: TokenMainMenu}},
		InputType: InputButton,
	}
}
