package game

import (
	"strings"
	"testing"

	"leaddizioni/internal/models"
)

func TestSelectPrefixesAudioCue(t *testing.T) {
	bank := NewPhraseBank(newScriptedPicker(t, 2), DefaultPhrases())

	got := bank.Select(CategoryWrong)
	want := `<audio src="https://actions.google.com/sounds/v1/cartoon/cartoon_boing.ogg">No, errore!</audio> Eh no, risposta sbagliata: riprova!`
	if got != want {
		t.Errorf("Select(wrong) = %q, want %q", got, want)
	}
}

func TestSelectWithoutAudio(t *testing.T) {
	bank := NewPhraseBank(newScriptedPicker(t, 1), DefaultPhrases())

	got := bank.Select(CategoryMisunderstand)
	if got != "Puoi ripetere?" {
		t.Errorf("Select(misunderstand) = %q, want %q", got, "Puoi ripetere?")
	}
}

func TestSelectCoversEveryPhrase(t *testing.T) {
	bank := NewPhraseBank(NewRandomPicker(3), DefaultPhrases())
	phrases := DefaultPhrases()[CategoryCredits].Phrases

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		seen[bank.Select(CategoryCredits)] = true
	}
	for _, phrase := range phrases {
		if !seen[phrase] {
			t.Errorf("phrase %q never selected", phrase)
		}
	}
}

func TestSelectUnknownCategory(t *testing.T) {
	bank := NewPhraseBank(newScriptedPicker(t), DefaultPhrases())
	if got := bank.Select(Category("applause")); got != "" {
		t.Errorf("Select(unknown) = %q, want empty", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "plain text unchanged",
			text: "Quanto fa 2 più 2?",
			want: "Quanto fa 2 più 2?",
		},
		{
			name: "audio wrapped",
			text: `<audio src="x.ogg">Bravo!</audio> Hai indovinato!`,
			want: `<speak><audio src="x.ogg">Bravo!</audio> Hai indovinato!</speak>`,
		},
		{
			name: "closing tag alone is not a marker",
			text: "testo </audio>",
			want: "testo </audio>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.text); got != tt.want {
				t.Errorf("Wrap(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestComposeWrapsOnce(t *testing.T) {
	bank := NewPhraseBank(newScriptedPicker(t), DefaultPhrases())
	resp := &models.Response{}
	resp.Say(AudioCue(soundReveal, "No, errore!"))
	resp.Say("No, mi dispiace: 2 più 3 fa 5.")
	resp.Say(AudioCue(soundClosing, "Voli via!"))

	bank.Compose(resp)

	if strings.Count(resp.Speech, "<speak>") != 1 || strings.Count(resp.Speech, "</speak>") != 1 {
		t.Fatalf("expected a single envelope, got %q", resp.Speech)
	}
	if !strings.HasPrefix(resp.Speech, "<speak><audio ") || !strings.HasSuffix(resp.Speech, "</audio></speak>") {
		t.Errorf("envelope not outermost: %q", resp.Speech)
	}
	if resp.DisplayText != "No, mi dispiace: 2 più 3 fa 5." {
		t.Errorf("DisplayText = %q", resp.DisplayText)
	}
}

func TestComposePlainReply(t *testing.T) {
	bank := NewPhraseBank(newScriptedPicker(t), DefaultPhrases())
	resp := &models.Response{}
	resp.Say("Non ho capito.")

	bank.Compose(resp)

	if resp.Speech != "Non ho capito." || resp.DisplayText != "Non ho capito." {
		t.Errorf("Compose() = (%q, %q)", resp.Speech, resp.DisplayText)
	}
}

func TestDefaultPhrasesKeepCatalogText(t *testing.T) {
	right := DefaultPhrases()[CategoryRight].Phrases
	if len(right) != 10 {
		t.Fatalf("right phrases = %d, want 10", len(right))
	}
	if right[8] != "Fantastico! Hai indovinato" {
		t.Errorf("right[8] = %q, want %q", right[8], "Fantastico! Hai indovinato")
	}
}
