package discount

import "github.com/shopspring/decimal"

// Descriptions shared by every dispatch mechanism.
const (
	DescriptionBOGO = "Buy one get one free"
	DescriptionNone = "No discount applied"
)

func percentOff(item Item, p Percent) decimal.Decimal {
	return item.Subtotal().Mul(p.Percent).Div(hundred)
}

// flatOff is floored at zero by capping the amount at the subtotal.
func flatOff(item Item, f Flat) decimal.Decimal {
	return decimal.Min(f.Amount, item.Subtotal())
}

func bogoOff(item Item, _ BOGO) decimal.Decimal {
	if item.Quantity < 2 {
		return decimal.Zero
	}
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity / 2)))
}

func noneOff(Item, None) decimal.Decimal {
	return decimal.Zero
}

func describePercent(_ Item, p Percent) string {
	return formatNumber(p.Percent) + "% off"
}

func describeFlat(_ Item, f Flat) string {
	return "$" + formatMoney(f.Amount) + " off"
}

func describeBOGO(Item, BOGO) string {
	return DescriptionBOGO
}

func describeNone(Item, None) string {
	return DescriptionNone
}

// formatNumber prints d exactly, without trailing zeros.
func formatNumber(d decimal.Decimal) string {
	return d.String()
}

// formatMoney prints d exactly, padding amounts with a fractional part to
// whole cents: 50 -> "50", 4.5 -> "4.50", 0.125 -> "0.125".
func formatMoney(d decimal.Decimal) string {
	if d.IsInteger() || !d.Equal(d.Truncate(2)) {
		return d.String()
	}
	return d.StringFixed(2)
}
