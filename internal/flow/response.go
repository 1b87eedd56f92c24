package flow

// InputType tells the client which input control to show next.
type InputType string

const (
	InputText   InputType = "text"
	InputButton InputType = "button"
	InputTel    InputType = "tel"
)

// Button is one choice the user can tap. The JSON names are the wire
// contract the web widget expects.
type Button struct {
	Label string `json:"text"`
	Token string `json:"value"`
}

// Response is the fixed payload every handler produces. An empty SessionID
// tells the client to drop its local session reference.
type Response struct {
	SessionID   string    `json:"session_id"`
	Messages    []string  `json:"messages"`
	Buttons     []Button  `json:"buttons"`
	InputType   InputType `json:"input_type"`
	Placeholder string    `json:"placeholder,omitempty"`
}

func hasToken(buttons []Button, token string) bool {
	for _, b := range buttons {
		if b.Token == token {
			return true
		}
	}
	return false
}

// ensureExit appends the Exit affordance to responses that present buttons
// and lack it. Prompt screens (name, phone, code) have no buttons and are
// left alone; a handler that already added Exit is never duplicated.
func ensureExit(resp Response) Response {
	if len(resp.Buttons) == 0 || hasToken(resp.Buttons, TokenExit) {
		return resp
	}
	resp.Buttons = append(resp.Buttons, Button{Label: "Exit", Token: TokenExit})
	return resp
}
