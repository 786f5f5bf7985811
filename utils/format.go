package utils

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount as "Rp 10.000".
func FormatRupiah(amount int64) string {
	return idPrinter.Sprintf("Rp %d", amount)
}

// FormatNumber groups digits the Indonesian way ("1.250").
func FormatNumber(n int64) string {
	return idPrinter.Sprintf("%d", n)
}

// ProgressBar draws width cells, filled in proportion to percent (0-100).
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

var (
	bulan = [...]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli",
		"Agustus", "September", "Oktober", "November", "Desember"}
	hari = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
)

// DayName returns the Indonesian weekday name.
func DayName(d time.Weekday) string { return hari[d] }

// MonthName returns the Indonesian month name.
func MonthName(m time.Month) string { return bulan[m-1] }

// FormatDate renders t as "Senin, 1 Januari 2024".
func FormatDate(t time.Time) string {
	return DayName(t.Weekday()) + ", " + idPrinter.Sprintf("%d", t.Day()) + " " + MonthName(t.Month()) + " " + t.Format("2006")
}

// FormatDateTime renders t as "1 Jan 2024, 14:05".
func FormatDateTime(t time.Time) string {
	return t.Format("2 ") + MonthName(t.Month())[:3] + t.Format(" 2006, 15:04")
}

// Truncate cuts s to at most max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 3 {
		return string(rs[:max])
	}
	return string(rs[:max-3]) + "..."
}
