package booking

import "time"

// ===============================
// Cancellation Policy
// ===============================

type CancellationPolicy string

const (
	PolicyFlexible   CancellationPolicy = "flexible"
	PolicyModerate   CancellationPolicy = "moderate"
	PolicyStrict     CancellationPolicy = "strict"
	PolicyVeryStrict CancellationPolicy = "very_strict"
)

// RequiredNotice mapeia a política para a antecedência mínima de cancelamento.
func RequiredNotice(p CancellationPolicy) time.Duration {
	switch p {
	case PolicyModerate:
		return 48 * time.Hour
	case PolicyStrict:
		return 72 * time.Hour
	case PolicyVeryStrict:
		return 168 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// RequiredNoticeWithDefault: política reconhecida manda; fora disso vale
// a antecedência padrão do negócio (em horas). defaultHours <= 0 cai no
// fallback de RequiredNotice.
func RequiredNoticeWithDefault(p CancellationPolicy, defaultHours int) time.Duration {
	switch p {
	case PolicyFlexible, PolicyModerate, PolicyStrict, PolicyVeryStrict:
		return RequiredNotice(p)
	}
	if defaultHours > 0 {
		return time.Duration(defaultHours) * time.Hour
	}
	return RequiredNotice(p)
}

// ===============================
// Predicados de política (puros)
// ===============================

// CheckAdvanceLimit: início no futuro e dentro do limite de antecedência.
func CheckAdvanceLimit(start, now time.Time, limitDays int) bool {
	if !start.After(now) {
		return false
	}
	if limitDays <= 0 {
		return true
	}
	return !start.After(now.AddDate(0, 0, limitDays))
}

// CheckCancellationAllowed: lead time restante >= antecedência exigida.
func CheckCancellationAllowed(start, now time.Time, p CancellationPolicy) bool {
	return start.Sub(now) >= RequiredNotice(p)
}
