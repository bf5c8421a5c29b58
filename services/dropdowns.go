package services

// AmountUnitOptions lists the units offered by the line-item form, in the
// order of their numeric codes.
var AmountUnitOptions = []AmountUnit{
	UnitHour,
	UnitDay,
	UnitWeek,
	UnitMonth,
}

// PDFVariant selects how much financial detail an exported document carries.
type PDFVariant string

const (
	VariantSimple PDFVariant = "simple"
	VariantFull   PDFVariant = "full"
)

// ParsePDFVariant maps a query value to a variant, defaulting to simple.
func ParsePDFVariant(s string) PDFVariant {
	if PDFVariant(s) == VariantFull {
		return VariantFull
	}
	return VariantSimple
}
