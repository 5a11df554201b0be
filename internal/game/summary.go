package game

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const summaryKey = "game.summary"

var summaryCatalog = mustSummaryCatalog()

func mustSummaryCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.Italian))
	err := b.Set(language.Italian, summaryKey,
		catalog.Var("correct", plural.Selectf(1, "%d",
			"=1", "una domanda",
			plural.Other, "%[1]d domande")),
		catalog.Var("total", plural.Selectf(2, "%d",
			"=1", "una",
			plural.Other, "%[2]d")),
		catalog.String("Hai risposto correttamente a ${correct} su ${total}."))
	if err != nil {
		panic(err)
	}
	return b
}

// renderSummary builds the final score sentence. A count of one is spoken as
// "una" and takes the singular noun; the counts themselves are left untouched.
func renderSummary(correct, total int) string {
	p := message.NewPrinter(language.Italian, message.Catalog(summaryCatalog))
	return p.Sprintf(summaryKey, correct, total)
}
