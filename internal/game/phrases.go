package game

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"leaddizioni/internal/models"
)

// Category identifies a group of interchangeable phrases
type Category string

const (
	CategoryWrong         Category = "wrong"
	CategoryRight         Category = "right"
	CategoryMisunderstand Category = "misunderstand"
	CategoryCredits       Category = "credits"
)

const audioMarker = "<audio "

// Sound effects from the Actions on Google library
const (
	soundWrong   = "https://actions.google.com/sounds/v1/cartoon/cartoon_boing.ogg"
	soundRight   = "https://actions.google.com/sounds/v1/cartoon/wood_plank_flicks.ogg"
	soundReveal  = "https://actions.google.com/sounds/v1/cartoon/metal_twang.ogg"
	soundClosing = "https://actions.google.com/sounds/v1/transportation/wet_tire_drive_by.ogg"
)

// PhraseSet is the catalog entry of one category
type PhraseSet struct {
	AudioURL      string // optional
	AudioFallback string // spoken when the audio cannot be played
	Phrases       []string
}

// DefaultPhrases returns the Italian phrase catalog
func DefaultPhrases() map[Category]PhraseSet {
	return map[Category]PhraseSet{
		CategoryWrong: {
			AudioURL:      soundWrong,
			AudioFallback: "No, errore!",
			Phrases: []string{
				"Risposta sbagliata: riprova!",
				"No, risposta sbagliata: riprova!",
				"Eh no, risposta sbagliata: riprova!",
				"Peccato, risposta sbagliata: riprova!",
				"Uffi, risposta errata: riprova!",
				"Conta meglio, risposta sbagliata!",
			},
		},
		CategoryRight: {
			AudioURL:      soundRight,
			AudioFallback: "Bravo!",
			Phrases: []string{
				"Hai indovinato!",
				"Ottimo! Hai indovinato!",
				"Bravo! Hai indovinato!",
				"Eccellente! Hai indovinato!",
				"Molto bene! Hai indovinato!",
				"Yes! Hai indovinato!",
				"Perfetto! Hai indovinato!",
				"Bravissimo! Hai indovinato!",
				"Fantastico! Hai indovinato",
				"Meraviglioso! Hai indovinato!",
			},
		},
		CategoryMisunderstand: {
			Phrases: []string{
				"Non ho capito.",
				"Puoi ripetere?",
				"Cosa hai detto?",
				"Scusami, puoi ripetere?",
				"Sono un po' sordo: puoi ripetere?",
				"Non si sente bene: puoi ripetere?",
			},
		},
		CategoryCredits: {
			Phrases: []string{
				"Grazie per aver giocato; alla prossima!",
				"È stato un piacere giocare con te!",
				"Spero di rivederti presto!",
				"Spero di rivederti, anzi risentirti presto!",
				"Ciao e... duc in altum!",
				"Buona continuazione amico mio.",
			},
		},
	}
}

// PhraseBank picks phrases from a catalog
type PhraseBank struct {
	picker Picker
	sets   map[Category]PhraseSet
}

// NewPhraseBank creates a phrase bank over sets
func NewPhraseBank(picker Picker, sets map[Category]PhraseSet) *PhraseBank {
	return &PhraseBank{picker: picker, sets: sets}
}

// Select returns a random phrase of the category, preceded by its audio cue if it has one
func (b *PhraseBank) Select(category Category) string {
	set, ok := b.sets[category]
	if !ok || len(set.Phrases) == 0 {
		return ""
	}

	phrase := set.Phrases[b.picker.Pick(0, len(set.Phrases)-1)]
	if set.AudioURL == "" {
		return phrase
	}
	return AudioCue(set.AudioURL, set.AudioFallback) + " " + phrase
}

// Compose joins the reply segments and wraps the result once
func (b *PhraseBank) Compose(resp *models.Response) {
	text := strings.Join(resp.Segments, " ")
	resp.Speech = Wrap(text)
	resp.DisplayText = StripAudio(text)
}

// AudioCue renders an SSML audio element with a spoken fallback
func AudioCue(url, fallback string) string {
	return fmt.Sprintf(`<audio src="%s">%s</audio>`, html.EscapeString(url), html.EscapeString(fallback))
}

// Wrap encloses text in a <speak> envelope when it carries audio markup.
// Mixed plain and SSML replies are rejected by the assistant, so this must run
// once on the final text and never per segment.
func Wrap(text string) string {
	if !strings.Contains(text, audioMarker) {
		return text
	}
	return "<speak>" + text + "</speak>"
}

var (
	audioElement = regexp.MustCompile(`<audio [^>]*>.*?</audio>`)
	extraSpaces  = regexp.MustCompile(`\s{2,}`)
)

// StripAudio removes audio elements for text-only surfaces
func StripAudio(text string) string {
	text = audioElement.ReplaceAllString(text, "")
	return strings.TrimSpace(extraSpaces.ReplaceAllString(text, " "))
}
