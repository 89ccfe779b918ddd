package discord

// Embed is a Discord message embed.
type Embed struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Color       int             `json:"color,omitempty"`
	Fields      []EmbedField    `json:"fields,omitempty"`
	Image       *EmbedImage     `json:"image,omitempty"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
	Footer      *EmbedFooter    `json:"footer,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
}

// EmbedField is a labelled embed section.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedImage references a large embed image.
type EmbedImage struct {
	URL string `json:"url"`
}

// EmbedThumbnail references a small embed image.
type EmbedThumbnail struct {
	URL string `json:"url"`
}

// EmbedFooter is the embed footer line.
type EmbedFooter struct {
	Text string `json:"text"`
}

// Embed colors used by announcements and summaries.
const (
	ColorAlert   = 0xe74c3c
	ColorInfo    = 0x0099ff
	ColorNeutral = 0x95a5a6
	ColorPaid    = 0x2ecc71
	ColorUnpaid  = 0xe67e22
)
