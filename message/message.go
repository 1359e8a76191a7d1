// Package message defines the payload types a rendered script produces.
package message

import "time"

// Sent is a rendered message payload ready to hand to a chat service's send
// or edit API. A Sent and its fields must not be modified by the renderer
// after it is returned.
type Sent struct {
	// Content is the plain text of the message. It may be empty if an embed
	// or buttons fully represent the message.
	Content string `json:"content,omitzero"`
	// Embed is the structured embed of the message, if any.
	Embed *Embed `json:"embed,omitzero"`
	// Buttons are interactive button descriptors attached to the message.
	Buttons []Button `json:"buttons,omitzero"`
}

// Embed is a structured rich-content block.
type Embed struct {
	// Title is the embed title.
	Title string `json:"title,omitzero"`
	// Description is the embed body text.
	Description string `json:"description,omitzero"`
	// URL is the link wrapped by the title.
	URL string `json:"url,omitzero"`
	// Color is the accent color as a 24-bit RGB integer. Zero means the
	// service default.
	Color int `json:"color,omitzero"`
	// Timestamp is the timestamp displayed in the embed chrome.
	Timestamp time.Time `json:"timestamp,omitzero"`
	// Author is the author block, if any.
	Author *Author `json:"author,omitzero"`
	// Footer is the footer block, if any.
	Footer *Footer `json:"footer,omitzero"`
	// Thumbnail is the small image displayed beside the embed.
	Thumbnail *Media `json:"thumbnail,omitzero"`
	// Image is the large image displayed below the embed body.
	Image *Media `json:"image,omitzero"`
	// Fields are the name/value field pairs of the embed, in display order.
	Fields []Field `json:"fields,omitzero"`
}

// Field is a single name/value pair in an embed.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	// Inline indicates the field renders beside its neighbors rather than
	// on its own row.
	Inline bool `json:"inline,omitzero"`
}

// Footer is the footer block of an embed.
type Footer struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitzero"`
}

// Author is the author block of an embed.
type Author struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitzero"`
	URL     string `json:"url,omitzero"`
}

// Media is an image reference in an embed.
type Media struct {
	URL string `json:"url"`
}

// Button is an interactive button descriptor. A button with a URL is a link
// button; one with a custom ID reports interactions back to the caller. A
// button with neither is invalid and is dropped by the renderer.
type Button struct {
	Label    string `json:"label,omitzero"`
	URL      string `json:"url,omitzero"`
	CustomID string `json:"custom_id,omitzero"`
	Emoji    string `json:"emoji,omitzero"`
}

// Valid reports whether the button can be delivered to a chat service.
func (b Button) Valid() bool {
	return b.URL != "" || b.CustomID != ""
}
