package discord

// InteractionType discriminates inbound interaction callbacks.
type InteractionType int

const (
	InteractionTypePing               InteractionType = 1
	InteractionTypeApplicationCommand InteractionType = 2
)

// ResponseType discriminates interaction responses.
type ResponseType int

const (
	// ResponseTypePong acknowledges a liveness ping.
	ResponseTypePong ResponseType = 1
	// ResponseTypeChannelMessage replies with a visible message.
	ResponseTypeChannelMessage ResponseType = 4
)

// Interaction is the subset of the interaction payload this service reads.
type Interaction struct {
	Type   InteractionType `json:"type"`
	Data   CommandData     `json:"data"`
	Member Member          `json:"member"`
}

// CommandData names the invoked slash command.
type CommandData struct {
	Name string `json:"name"`
}

// Member identifies the guild member behind a command invocation.
type Member struct {
	User User `json:"user"`
}

// User is the calling Discord user.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// InteractionResponse is the synchronous reply to an interaction.
type InteractionResponse struct {
	Type ResponseType  `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData carries the message content of a type-4 response.
type ResponseData struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Pong is the fixed acknowledgement for a liveness ping.
func Pong() InteractionResponse {
	return InteractionResponse{Type: ResponseTypePong}
}

// Message builds a type-4 channel message response.
func Message(data ResponseData) InteractionResponse {
	return InteractionResponse{Type: ResponseTypeChannelMessage, Data: &data}
}
