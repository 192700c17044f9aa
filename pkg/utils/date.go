package utils

import "time"

// ParseDate interpreta YYYY-MM-DD; string vazia retorna nil
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// CivilDate descarta o horário de t e devolve a data à meia-noite UTC
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today retorna a data civil de hoje no fuso informado, à meia-noite UTC
func Today(loc *time.Location) time.Time {
	return CivilDate(time.Now().In(loc))
}
