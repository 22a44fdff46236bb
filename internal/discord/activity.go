package discord

// Activity is the rich presence payload in Discord's wire shape. Empty
// optional sections must be omitted entirely, hence the pointer fields.
type Activity struct {
	Details    string      `json:"details,omitempty"`
	State      string      `json:"state,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"`
	Assets     *Assets     `json:"assets,omitempty"`
	Buttons    []Button    `json:"buttons,omitempty"`
}

// Timestamps carries Unix seconds for the elapsed/remaining timer.
type Timestamps struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// Assets names images uploaded to the Discord application.
type Assets struct {
	LargeImage string `json:"large_image,omitempty"`
	LargeText  string `json:"large_text,omitempty"`
	SmallImage string `json:"small_image,omitempty"`
	SmallText  string `json:"small_text,omitempty"`
}

// Button is a clickable link under the presence. Discord allows at most two.
type Button struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}
