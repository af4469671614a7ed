// Package lexicon holds the static keyword and pattern configuration that
// drives every extractor and classifier. A Lexicon is built once at process
// start and never mutated afterwards; the declared order of categories,
// intent groups and patterns is the tie-break contract, not an accident.
package lexicon

import (
	"fmt"
	"regexp"
)

// value matches the numeric substring of an amount. Exactly one capture
// group, so every amount pattern exposes the value as group 1.
const value = `(\d+(?:[.,]\d+)*)`

type (
	// Category pairs a category key with its ordered keyword list.
	Category struct {
		Key      string   `json:"key"`
		Keywords []string `json:"keywords"`
	}

	// IntentGroup pairs an intent name with its ordered keyword list.
	IntentGroup struct {
		Intent   string   `json:"intent"`
		Keywords []string `json:"keywords"`
	}

	// RelativeDay maps a relative-date keyword to its offset in days
	// before the processing date. Longer keywords must be declared first
	// ("anteayer" contains "ayer").
	RelativeDay struct {
		Keyword string `json:"keyword"`
		DaysAgo int    `json:"days_ago"`
	}

	// Lexicon is the compiled, immutable configuration object injected
	// into extractors and classifiers.
	Lexicon struct {
		Categories []Category
		Intents    []IntentGroup

		// OtherCategory is the sentinel returned when no category
		// keyword matches an expense. IncomeCategory is the fixed tag
		// carried by income records.
		OtherCategory  string
		IncomeCategory string

		// AmountPatterns is the ordered first-match-wins chain for
		// free-text amounts. TotalPatterns is the receipt variant that
		// prioritizes labeled totals over incidental amounts.
		AmountPatterns []*regexp.Regexp
		TotalPatterns  []*regexp.Regexp

		// AnchoredDate matches "el 15/3", "del 15/03/2024", "fecha 1-2".
		// ReceiptDate matches the "FECHA: ..." label on tickets.
		AnchoredDate *regexp.Regexp
		ReceiptDate  *regexp.Regexp
		RelativeDays []RelativeDay

		// ConceptPatterns holds one pattern per preposition, in the
		// declared preposition order.
		ConceptPatterns []*regexp.Regexp

		// MerchantReject filters receipt header lines that are totals,
		// tax ids or ticket boilerplate rather than a merchant name.
		MerchantReject *regexp.Regexp

		// LineItem captures (label, price) from a single receipt line.
		// ItemRejectWords disqualify a label even when a price matched.
		LineItem        *regexp.Regexp
		ItemRejectWords []string

		// IncomeMarkers trigger the "Freelance:" concept prefix.
		IncomeMarkers []string
	}
)

// Default returns the built-in Spanish (Rioplatense) lexicon.
func Default() *Lexicon {
	lex, err := build(defaultConfig())
	if err != nil {
		// The built-in patterns are compile-time constants; a failure
		// here is a programming error.
		panic(fmt.Sprintf("lexicon: invalid default config: %v", err))
	}
	return lex
}

func defaultConfig() Config {
	return Config{
		Categories: []Category{
			{Key: "supermercado", Keywords: []string{"supermercado", "super", "almacen", "almacén", "verduleria", "verdulería", "carniceria", "carnicería"}},
			{Key: "comida", Keywords: []string{"restaurante", "restaurant", "bar", "cafe", "café", "pizza", "hamburguesa", "delivery", "comida", "helado"}},
			{Key: "transporte", Keywords: []string{"uber", "taxi", "remis", "colectivo", "subte", "tren", "nafta", "combustible", "peaje", "estacionamiento"}},
			{Key: "servicios", Keywords: []string{"luz", "gas", "agua", "internet", "celular", "telefono", "teléfono", "alquiler", "expensas", "cable"}},
			{Key: "entretenimiento", Keywords: []string{"cine", "netflix", "spotify", "teatro", "juego", "salida", "recital"}},
			{Key: "salud", Keywords: []string{"farmacia", "medico", "médico", "dentista", "remedio", "obra social", "prepaga"}},
			{Key: "ropa", Keywords: []string{"ropa", "zapatillas", "camisa", "pantalon", "pantalón", "campera"}},
			{Key: "hogar", Keywords: []string{"ferreteria", "ferretería", "muebles", "limpieza", "bazar"}},
			{Key: "educacion", Keywords: []string{"curso", "libro", "universidad", "colegio", "facultad"}},
		},
		OtherCategory:  "otros",
		IncomeCategory: "ingreso",
		Intents: []IntentGroup{
			{Intent: "expense", Keywords: []string{"gasté", "gaste", "pagué", "pague", "compré", "compre", "gasto", "costó", "costo", "aboné", "abone"}},
			{Intent: "income", Keywords: []string{"cobré", "cobre", "me pagaron", "sueldo", "recibí", "recibi", "facturé", "facture", "ingreso", "gané", "gane"}},
			{Intent: "goal", Keywords: []string{"meta", "ahorrar", "ahorro", "objetivo", "juntar"}},
			{Intent: "report", Keywords: []string{"reporte", "resumen", "balance", "informe", "cuánto", "cuanto"}},
			{Intent: "budget", Keywords: []string{"presupuesto", "límite", "limite", "tope"}},
		},
		AmountPatterns: []string{
			`\$\s*` + value,
			value + `\s*pesos\b`,
			value + `\s*\$`,
			value + `\s*(?:ars|usd|eur)\b`,
			`(?:gast[eé]|pagu[eé]|compr[eé]|cost[oó]|abon[eé])\s+(?:de\s+)?\$?\s*` + value,
			value + `\s+(?:en|por)\b`,
		},
		TotalPatterns: []string{
			`\btotal[:\s]*\$?\s*` + value,
			`\bimporte[:\s]*\$?\s*` + value,
			`\$\s*` + value,
		},
		AnchoredDate: `\b(?:el|del|fecha)\s+(\d{1,2})[/\-.](\d{1,2})(?:[/\-.](\d{2,4}))?`,
		ReceiptDate:  `fecha[:\s]*(\d{1,4})[/\-.](\d{1,2})[/\-.](\d{1,4})`,
		RelativeDays: []RelativeDay{
			{Keyword: "antes de ayer", DaysAgo: 2},
			{Keyword: "anteayer", DaysAgo: 2},
			{Keyword: "ayer", DaysAgo: 1},
			{Keyword: "hoy", DaysAgo: 0},
		},
		Prepositions:    []string{"en", "de", "por", "para", "a"},
		Articles:        []string{"el", "la", "los", "las", "un", "una", "mi", "mis"},
		MerchantReject:  `(?:total|importe|subtotal|iva|cuit|ruc|nit|fecha|hora|ticket|factura|caja|cajero|tel|c\.p\.)`,
		LineItem:        `^([\p{L}][\p{L}\d .,'\-]*?)\s+\$?\s*` + value + `\s*$`,
		ItemRejectWords: []string{"total", "subtotal", "iva"},
		IncomeMarkers:   []string{"freelance", "proyecto"},
	}
}

// Config is the raw, serializable form of a Lexicon. Regex fields are plain
// strings so a deployment can override the defaults from a JSON file.
type Config struct {
	Categories     []Category    `json:"categories"`
	OtherCategory  string        `json:"other_category"`
	IncomeCategory string        `json:"income_category"`
	Intents        []IntentGroup `json:"intents"`

	AmountPatterns []string `json:"amount_patterns"`
	TotalPatterns  []string `json:"total_patterns"`

	AnchoredDate string        `json:"anchored_date"`
	ReceiptDate  string        `json:"receipt_date"`
	RelativeDays []RelativeDay `json:"relative_days"`

	Prepositions []string `json:"prepositions"`
	Articles     []string `json:"articles"`

	MerchantReject  string   `json:"merchant_reject"`
	LineItem        string   `json:"line_item"`
	ItemRejectWords []string `json:"item_reject_words"`
	IncomeMarkers   []string `json:"income_markers"`
}

func build(cfg Config) (*Lexicon, error) {
	if len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("no categories configured")
	}
	if cfg.OtherCategory == "" || cfg.IncomeCategory == "" {
		return nil, fmt.Errorf("other/income category sentinels are required")
	}

	lex := &Lexicon{
		Categories:      cfg.Categories,
		Intents:         cfg.Intents,
		OtherCategory:   cfg.OtherCategory,
		IncomeCategory:  cfg.IncomeCategory,
		RelativeDays:    cfg.RelativeDays,
		ItemRejectWords: cfg.ItemRejectWords,
		IncomeMarkers:   cfg.IncomeMarkers,
	}

	var err error
	if lex.AmountPatterns, err = compileAll(cfg.AmountPatterns); err != nil {
		return nil, fmt.Errorf("amount patterns: %w", err)
	}
	if lex.TotalPatterns, err = compileAll(cfg.TotalPatterns); err != nil {
		return nil, fmt.Errorf("total patterns: %w", err)
	}
	if lex.AnchoredDate, err = compileOne(cfg.AnchoredDate); err != nil {
		return nil, fmt.Errorf("anchored date pattern: %w", err)
	}
	if lex.ReceiptDate, err = compileOne(cfg.ReceiptDate); err != nil {
		return nil, fmt.Errorf("receipt date pattern: %w", err)
	}
	if lex.MerchantReject, err = compileOne(cfg.MerchantReject); err != nil {
		return nil, fmt.Errorf("merchant reject pattern: %w", err)
	}
	if lex.LineItem, err = compileOne(cfg.LineItem); err != nil {
		return nil, fmt.Errorf("line item pattern: %w", err)
	}

	articles := ""
	if len(cfg.Articles) > 0 {
		articles = `(?:(?:` + alternation(cfg.Articles) + `)\s+)?`
	}
	for _, prep := range cfg.Prepositions {
		p, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(prep) + `\s+` + articles + `([\p{L}][\p{L}\d ]*)`)
		if err != nil {
			return nil, fmt.Errorf("concept pattern for %q: %w", prep, err)
		}
		lex.ConceptPatterns = append(lex.ConceptPatterns, p)
	}

	return lex, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := compileOne(p)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func compileOne(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)` + pattern)
}

func alternation(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += "|"
		}
		out += regexp.QuoteMeta(w)
	}
	return out
}
