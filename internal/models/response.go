package models

// Card is the rich card shown on screen-capable surfaces
type Card struct {
	Title    string
	Text     string
	ImageURL string
}

// Response is the reply produced by one turn
type Response struct {
	Segments    []string
	Speech      string // Segments joined and wrapped in <speak> when audio is present
	DisplayText string // Speech without audio markup
	Suggestions []string
	Card        *Card
	Terminal    bool
}

// Say appends a segment to the reply
func (r *Response) Say(segment string) {
	if segment == "" {
		return
	}
	r.Segments = append(r.Segments, segment)
}
