package date

import "fmt"

// Period is a calendar granularity, used to decide how long cached data stays fresh.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// Identifier names the period containing d: two dates share an identifier
// if and only if they fall in the same period. Weeks are ISO weeks.
func (p Period) Identifier(d Date) string {
	switch p {
	case Daily:
		return d.String()
	case Weekly:
		y, w := d.time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case Monthly:
		return d.Format("2006-01")
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}
