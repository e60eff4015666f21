package offers

import (
	"fmt"
	"strings"
	"time"

	"autoparts/internal/domain"
)

var genitiveMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// IsDeliveryDate является ли s датой доставки вроде "12 марта 2025"
func IsDeliveryDate(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range genitiveMonths {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// PluralizeDays renders a day count: 1 день, 2 дня, 5 дней, 11 дней, 21 день.
func PluralizeDays(n int64) string {
	word := "дней"
	lastTwo := n % 100
	switch last := n % 10; {
	case lastTwo >= 11 && lastTwo <= 14:
	case last == 1:
		word = "день"
	case last >= 2 && last <= 4:
		word = "дня"
	}
	return fmt.Sprintf("%d %s", n, word)
}

// DeliveryDate дата через days дней от now, "2 марта 2025"
func DeliveryDate(now time.Time, days int64) string {
	d := now.AddDate(0, 0, int(days))
	return fmt.Sprintf("%d %s %d", d.Day(), genitiveMonths[d.Month()-1], d.Year())
}

// DeliveryLabel текст срока доставки для витрины
func DeliveryLabel(d domain.Delivery) string {
	switch {
	case d.Date != "":
		return d.Date
	case d.Days == nil:
		return "Уточняйте"
	case *d.Days == 0:
		return sameDayDelivery
	default:
		return PluralizeDays(*d.Days)
	}
}
