package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate возвращается, если строка не соответствует формату YYYY-MM-DD
var ErrInvalidDate = errors.New("invalid date format")

const dateLayout = "2006-01-02"

// Date календарная дата клиники без часового пояса
// Нулевое значение означает "дата не задана"
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate создает дату; переполнение дня или месяца нормализуется как в time.Date
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарную дату момента t в его собственной локации
// (без пересчета в UTC)
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate парсит строку YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Year возвращает год
func (d Date) Year() int { return d.year }

// Month возвращает месяц
func (d Date) Month() time.Month { return d.month }

// Day возвращает день месяца
func (d Date) Day() int { return d.day }

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Time возвращает полночь даты в UTC (для хранения и арифметики)
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// AddDays сдвигает дату на n дней
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths сдвигает дату на n календарных месяцев.
// Если в целевом месяце нет такого дня, берется последний день месяца:
// 2025-01-31 + 1 месяц = 2025-02-28 (а не 2025-03-03, как у time.AddDate)
func (d Date) AddMonths(n int) Date {
	monthIndex := int(d.month) - 1 + n
	year := d.year + floorDiv(monthIndex, 12)
	month := time.Month(floorMod(monthIndex, 12) + 1)

	day := d.day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return Date{year: year, month: month, day: day}
}

// DaysInMonth возвращает количество дней в месяце
func DaysInMonth(year int, month time.Month) int {
	// нулевой день следующего месяца = последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Compare возвращает -1, 0 или 1
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return sign(d.year - other.year)
	case d.month != other.month:
		return sign(int(d.month) - int(other.month))
	default:
		return sign(d.day - other.day)
	}
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal возвращает true для одинаковых дат
func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// String возвращает дату в формате YYYY-MM-DD (пустую строку для нулевой даты)
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(dateLayout)
}

// MarshalJSON реализует json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON реализует json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan реализует sql.Scanner для колонки DATE
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
