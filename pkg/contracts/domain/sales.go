package domain

// Column names of the store sales workbook.
const (
	ColumnOrderID   = "Order ID"
	ColumnDate      = "Date"
	ColumnAmount    = "Amount"
	ColumnQty       = "Qty"
	ColumnCategory  = "Category"
	ColumnStatus    = "Status"
	ColumnChannel   = "Channel"
	ColumnShipState = "ship-state"
	ColumnGender    = "Gender"
	ColumnAge       = "Age"

	// Derived by feature engineering
	ColumnAgeGroup = "Age Group"
	ColumnMonth    = "Month"
)

// CriticalColumns lists the columns whose missing values cause a row to be dropped.
var CriticalColumns = []string{ColumnAmount, ColumnCategory, ColumnStatus}

// Normalised gender values
const (
	GenderMan   = "Man"
	GenderWomen = "Women"
)

// GenderAliases maps raw gender spellings to their normalised value.
// Values not listed pass through unchanged.
var GenderAliases = map[string]string{
	"M":   GenderMan,
	"Men": GenderMan,
	"W":   GenderWomen,
}

// QtyWords maps spelled-out quantities to their integer value.
var QtyWords = map[string]int64{
	"One":   1,
	"Two":   2,
	"Three": 3,
	"Four":  4,
	"Five":  5,
}

// DefaultQty replaces any quantity that cannot be read as a number.
const DefaultQty int64 = 1

// Age groups
const (
	AgeGroupSenior   = "Senior"
	AgeGroupAdult    = "Adult"
	AgeGroupTeenager = "Teenager"
)

// Age group lower bounds (inclusive)
const (
	SeniorMinAge = 50
	AdultMinAge  = 30
)

// MonthOrder is the calendar order of the Month column values.
var MonthOrder = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthRank returns the zero-based calendar position of a month abbreviation.
func MonthRank(month string) (int, bool) {
	for i, m := range MonthOrder {
		if m == month {
			return i, true
		}
	}
	return -1, false
}
