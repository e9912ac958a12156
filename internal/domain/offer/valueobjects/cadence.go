package valueobjects

// Cadence is the billing interval an offer is scoped to.
type Cadence string

const (
	CadenceMonth Cadence = "month"
	CadenceYear  Cadence = "year"
)

func (c Cadence) String() string {
	return string(c)
}

var ValidCadences = map[Cadence]bool{
	CadenceMonth: true,
	CadenceYear:  true,
}
