package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/glowbook/selection-engine/internal/domain"
)

// wrapperKeys ключи-обертки, внутри которых продюсеры присылают саму сущность
var wrapperKeys = []string{"data", "attributes", "payload", "service", "professional", "staff"}

// unwrap разворачивает вложенные обертки вида {"data": {...}} до самой сущности
func unwrap(raw map[string]interface{}) map[string]interface{} {
	current := raw
	for depth := 0; depth < 3; depth++ {
		unwrapped := false
		for _, key := range wrapperKeys {
			if inner, ok := current[key].(map[string]interface{}); ok {
				current = inner
				unwrapped = true
				break
			}
		}
		if !unwrapped {
			return current
		}
	}
	return current
}

// stringField возвращает первое непустое строковое значение по списку ключей-вариантов
// Числовые идентификаторы приводятся к строке
func stringField(m map[string]interface{}, keys ...string) (string, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch typed := v.(type) {
		case string:
			trimmed := strings.TrimSpace(typed)
			if trimmed != "" {
				return trimmed, true
			}
		case float64:
			return strconv.FormatFloat(typed, 'f', -1, 64), true
		case int:
			return strconv.Itoa(typed), true
		case int64:
			return strconv.FormatInt(typed, 10), true
		}
	}
	return "", false
}

// boolField возвращает первое булево значение по списку ключей-вариантов
func boolField(m map[string]interface{}, keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := m[key].(bool); ok {
			return v, true
		}
	}
	return false, false
}

// anyField возвращает первое присутствующее значение по списку ключей-вариантов
func anyField(m map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

var nonPriceChars = regexp.MustCompile(`[^0-9.,\-]`)

// parsePrice приводит сырое значение цены к основным единицам валюты
//
// Правила:
//   - из строк удаляются все нечисловые символы (валюта, пробелы)
//   - запятая считается десятичным разделителем, если нет точки,
//     иначе запятые трактуются как разделители тысяч и удаляются
//   - числовое значение больше MinorUnitThreshold считается копейками/центами
//     и делится на 100
//
// Возвращает nil, если значение не удалось разобрать
func parsePrice(v interface{}) *float64 {
	var value float64

	switch typed := v.(type) {
	case float64:
		value = typed
	case int:
		value = float64(typed)
	case int64:
		value = float64(typed)
	case string:
		cleaned := nonPriceChars.ReplaceAllString(typed, "")
		if cleaned == "" {
			return nil
		}
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		value = parsed
	default:
		return nil
	}

	if value < 0 {
		return nil
	}
	if value > domain.MinorUnitThreshold {
		value = value / 100
	}
	return &value
}

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*(?:h|hr|hour)`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*(?:min|m)\b`)
	digitsOnly     = regexp.MustCompile(`^\d+$`)
)

// parseDurationMinutes приводит сырое значение длительности к целым минутам
// Принимает числа (минуты) и строки вида "90", "1h", "45min", "1h30min"
// Возвращает nil, если значение не удалось разобрать
func parseDurationMinutes(v interface{}) *int {
	switch typed := v.(type) {
	case float64:
		minutes := int(typed)
		if minutes <= 0 {
			return nil
		}
		return &minutes
	case int:
		if typed <= 0 {
			return nil
		}
		return &typed
	case string:
		s := strings.ToLower(strings.TrimSpace(typed))
		if s == "" {
			return nil
		}
		if digitsOnly.MatchString(s) {
			minutes, err := strconv.Atoi(s)
			if err != nil || minutes <= 0 {
				return nil
			}
			return &minutes
		}

		total := 0
		if m := hoursPattern.FindStringSubmatch(s); m != nil {
			hours, _ := strconv.Atoi(m[1])
			total += hours * 60
			// Минуты ищем только в остатке после часов, иначе "1h" совпадет с "min"
			s = s[strings.Index(s, m[0])+len(m[0]):]
		}
		if m := minutesPattern.FindStringSubmatch(s); m != nil {
			minutes, _ := strconv.Atoi(m[1])
			total += minutes
		}
		if total <= 0 {
			return nil
		}
		return &total
	default:
		return nil
	}
}
