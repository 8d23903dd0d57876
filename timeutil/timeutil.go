// Package timeutil centralizza l'allineamento di timestamp al giorno e
// all'ora del fuso orario locale configurato. Tutti i confronti e i
// salvataggi di candele giornaliere passano da qui, così l'invariante di
// allineamento alla mezzanotte locale vale in un punto solo.
package timeutil

import "time"

// DayStart restituisce la mezzanotte del giorno di t, nel fuso di t
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// HourStart restituisce l'inizio dell'ora di t, nel fuso di t
func HourStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// LocalDayStart converte un timestamp Unix nell'inizio del suo giorno locale
func LocalDayStart(unix int64, loc *time.Location) time.Time {
	return DayStart(time.Unix(unix, 0).In(loc))
}

// LocalDayStartUnix converte un timestamp Unix nel timestamp Unix della
// mezzanotte locale del giorno a cui appartiene
func LocalDayStartUnix(unix int64, loc *time.Location) int64 {
	return LocalDayStart(unix, loc).Unix()
}

// LocalHour restituisce l'ora locale (0-23) di un timestamp Unix
func LocalHour(unix int64, loc *time.Location) int {
	return time.Unix(unix, 0).In(loc).Hour()
}
