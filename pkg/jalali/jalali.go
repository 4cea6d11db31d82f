// Package jalali конвертирует даты между календарём Джалали (солнечная хиджра)
// и григорианским календарём.
//
// Все вычисления целочисленные: дата переводится в номер дня относительно
// 1970-01-01 (unix day) и обратно. Високосность определяется 33-летним
// арифметическим циклом, поэтому конвертация и IsLeapYear всегда согласованы.
package jalali

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidDate возвращается при некорректной строке или несуществующей дате
	ErrInvalidDate = errors.New("jalali: invalid date")

	// ErrInvalidLayout возвращается при неподдерживаемом формате вывода
	ErrInvalidLayout = errors.New("jalali: unsupported layout")
)

// Поддерживаемые форматы вывода
const (
	LayoutDash  = "Y-m-d"
	LayoutSlash = "Y/m/d"
)

const (
	// epochUnixDay номер unix-дня для 1 Фарвардина 1 года
	epochUnixDay = -492268

	cycleYears = 33
	cycleDays  = cycleYears*365 + 8

	// daysInFirstHalf дни в месяцах 1-6 (по 31 дню)
	daysInFirstHalf = 6 * 31
)

// leapRemainders остатки year mod 33, при которых год високосный
var leapRemainders = [cycleYears]bool{
	1: true, 5: true, 9: true, 13: true, 17: true, 22: true, 26: true, 30: true,
}

// Date дата в календаре Джалали
type Date struct {
	Year  int
	Month int
	Day   int
}

// IsLeapYear проверяет, является ли год Джалали високосным
func IsLeapYear(year int) bool {
	return leapRemainders[mod(year, cycleYears)]
}

// DaysInMonth возвращает количество дней в месяце.
// Месяцы 1-6 по 31 дню, 7-11 по 30, 12-й 29 (30 в високосный год).
// Для некорректного месяца возвращает 0.
func DaysInMonth(year, month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	case month == 12:
		if IsLeapYear(year) {
			return 30
		}
		return 29
	default:
		return 0
	}
}

// New создаёт дату с валидацией
func New(year, month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate проверяет, что дата существует
func (d Date) Validate() error {
	if d.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, d.Year)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, d.Month)
	}
	if d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month) {
		return fmt.Errorf("%w: day %d of %d/%d", ErrInvalidDate, d.Day, d.Year, d.Month)
	}
	return nil
}

// Parse разбирает строку вида "1403-01-15" или "1403/1/15"
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}

	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	return New(nums[0], nums[1], nums[2])
}

// Format форматирует дату в LayoutDash или LayoutSlash
func (d Date) Format(layout string) (string, error) {
	var sep string
	switch layout {
	case LayoutDash:
		sep = "-"
	case LayoutSlash:
		sep = "/"
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, layout)
	}
	return fmt.Sprintf("%04d%s%02d%s%02d", d.Year, sep, d.Month, sep, d.Day), nil
}

// String возвращает дату в формате Y-m-d
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ToGregorian переводит дату в григорианскую (полночь UTC, только календарная дата)
func (d Date) ToGregorian() (time.Time, error) {
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}
	return fromUnixDay(d.unixDay()), nil
}

// FromGregorian переводит календарную дату t (в её собственной локации) в Джалали
func FromGregorian(t time.Time) Date {
	return fromDayNumber(toUnixDay(t) - epochUnixDay)
}

// JalaliToGregorian разбирает строку Джалали и возвращает григорианскую дату
func JalaliToGregorian(s string) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.ToGregorian()
}

// GregorianToJalali возвращает строковое представление даты t в календаре Джалали
func GregorianToJalali(t time.Time, layout string) (string, error) {
	return FromGregorian(t).Format(layout)
}

// StartOfMonth возвращает первый день месяца Джалали в григорианском календаре
func StartOfMonth(year, month int) (time.Time, error) {
	return Date{Year: year, Month: month, Day: 1}.ToGregorian()
}

// EndOfMonth возвращает последний день месяца Джалали в григорианском календаре
func EndOfMonth(year, month int) (time.Time, error) {
	return Date{Year: year, Month: month, Day: DaysInMonth(year, month)}.ToGregorian()
}

// unixDay номер unix-дня для даты
func (d Date) unixDay() int {
	return epochUnixDay + daysBeforeYear(d.Year) + daysBeforeMonth(d.Month) + d.Day - 1
}

// daysBeforeYear количество дней от 1 Фарвардина 1 года до 1 Фарвардина года year
func daysBeforeYear(year int) int {
	n := year - 1
	cycles := floorDiv(n, cycleYears)
	rest := n - cycles*cycleYears

	leaps := cycles * 8
	for r := 1; r <= rest; r++ {
		if leapRemainders[r] {
			leaps++
		}
	}
	return n*365 + leaps
}

func daysBeforeMonth(month int) int {
	if month <= 7 {
		return (month - 1) * 31
	}
	return daysInFirstHalf + (month-7)*30
}

// fromDayNumber строит дату по количеству дней от 1 Фарвардина 1 года
func fromDayNumber(n int) Date {
	cycles := floorDiv(n, cycleDays)
	rest := n - cycles*cycleDays

	year := cycles*cycleYears + 1
	for {
		length := 365
		if IsLeapYear(year) {
			length = 366
		}
		if rest < length {
			break
		}
		rest -= length
		year++
	}

	if rest < daysInFirstHalf {
		return Date{Year: year, Month: rest/31 + 1, Day: rest%31 + 1}
	}
	rest -= daysInFirstHalf
	return Date{Year: year, Month: 7 + rest/30, Day: rest%30 + 1}
}

func toUnixDay(t time.Time) int {
	y, m, d := t.Date()
	return int(floorDiv64(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), 86400))
}

func fromUnixDay(n int) time.Time {
	return time.Unix(int64(n)*86400, 0).UTC()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	return a - floorDiv(a, b)*b
}
