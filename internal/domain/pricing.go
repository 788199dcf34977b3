package domain

import "github.com/shopspring/decimal"

const moneyPlaces = 2

var DefaultTaxRate = decimal.RequireFromString("0.15")

// LineCharge is the money split for one purchased course.
type LineCharge struct {
	CourseID uint
	Amount   decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
}

type Quote struct {
	Lines    []LineCharge
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Pricer splits an order-level discount equally across courses and taxes each
// course on its discounted price. Discount is not capped at the subtotal.
type Pricer struct {
	taxRate decimal.Decimal
}

func NewPricer(taxRate decimal.Decimal) *Pricer {
	return &Pricer{taxRate: taxRate}
}

func (p *Pricer) Quote(courses []Course, discount decimal.Decimal) Quote {
	q := Quote{
		Subtotal: decimal.Zero,
		Discount: discount,
		Tax:      decimal.Zero,
	}
	if len(courses) == 0 {
		q.Total = q.Subtotal.Sub(discount)
		return q
	}

	share := discount.Div(decimal.NewFromInt(int64(len(courses)))).Round(moneyPlaces)
	for _, c := range courses {
		tax := c.Price.Sub(share).Mul(p.taxRate).Round(moneyPlaces)
		q.Lines = append(q.Lines, LineCharge{
			CourseID: c.ID,
			Amount:   c.Price,
			Discount: share,
			Tax:      tax,
		})
		q.Subtotal = q.Subtotal.Add(c.Price)
		q.Tax = q.Tax.Add(tax)
	}
	q.Total = q.Subtotal.Sub(discount).Add(q.Tax)
	return q
}
