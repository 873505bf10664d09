package detection

import "strings"

// headerKeywords are the domain words that identify a header row in supplier
// price lists. Matching is case-insensitive substring containment; only the
// first match per cell counts toward the row score.
var headerKeywords = []string{
	"name", "code", "id", "description", "item", "product", "style",
	"price", "cost", "unit", "amount", "value", "rate", "total",
	"qty", "quantity", "stock", "size", "colour", "color", "brand",
	"category", "type", "model", "supplier", "vendor", "sku",
	"barcode", "ref", "pack", "carton", "rrp", "ean",
}

// costKeywords are tried for an exact, case-insensitive header match. The
// most specific phrases come first so alternatives rank sensibly.
var costKeywords = []string{
	"unit cost",
	"unit price",
	"cost price",
	"cost per unit",
	"price per unit",
	"buy price",
	"purchase price",
	"wholesale price",
	"trade price",
	"net price",
	"cost",
	"price",
}

// priceHeaderKeywords mark a header as price-like for the data-pattern bonus.
var priceHeaderKeywords = []string{"price", "cost", "unit cost", "unit price"}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
