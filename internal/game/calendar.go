package game

import "fmt"

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

const (
	startYear  = 1846
	startMonth = 4 // April departure, as the emigrant guides advised
	startDay   = 1
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GameDate is the journey calendar. Leap years are ignored; the trail does
// not care.
type GameDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func NewGameDate() GameDate {
	return GameDate{Year: startYear, Month: startMonth, Day: startDay}
}

func (d *GameDate) Advance(days int) {
	for i := 0; i < days; i++ {
		d.Day++
		if d.Day > daysInMonth[d.Month-1] {
			d.Day = 1
			d.Month++
			if d.Month > 12 {
				d.Month = 1
				d.Year++
			}
		}
	}
}

func (d GameDate) Season() Season {
	switch d.Month {
	case 3, 4, 5:
		return SeasonSpring
	case 6, 7, 8:
		return SeasonSummer
	case 9, 10, 11:
		return SeasonFall
	case 12, 1, 2:
		return SeasonWinter
	default:
		panic(fmt.Sprintf("invalid month: %d", d.Month))
	}
}

func (d GameDate) MonthName() string {
	return monthNames[d.Month-1]
}

func (d GameDate) String() string {
	return fmt.Sprintf("%s %d, %d", d.MonthName(), d.Day, d.Year)
}
