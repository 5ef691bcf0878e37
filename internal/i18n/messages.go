package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text doubles as the key.
const (
	AppTitle        = "PowerTimer"
	WindowTitle     = "PowerTimer - Shutdown Timer"
	TimeRemaining   = "TIME REMAINING"
	UnitsHMS        = "hours  minutes  seconds"
	UnitsMS         = "minutes  seconds"
	PressToCancel   = "Press 'C' to cancel"
	Cancelled       = "Shutdown cancelled"
	NoticeTitle     = "NOTICE"
	ErrorTitle      = "ERROR"
	GoodbyeTitle    = "GOODBYE"
	Goodbye         = "See you soon!"
	InvalidOption   = "Invalid option"
	OptionMinutes   = "%d minutes"
	OptionOneHour   = "1 hour"
	OptionTwoHours  = "2 hours"
	OptionCustom    = "Custom"
	OptionRepeat    = "Repeat last (%d min)"
	OptionExit      = "Exit"
	MenuFooter      = "Select an option by number"
	RecentFooter    = "Recent: %s"
	PromptOption    = "Option: "
	PromptMinutes   = "Time in minutes: "
	ErrorLine       = "Error: %s"
	NotPositive     = "minutes must be greater than 0"
	TooLong         = "minutes must be at most %d"
	NotANumber      = "%q is not a whole number of minutes"
	ShuttingDown    = "Shutting down now"
	ShutdownFailed  = "Shutdown failed: %v"
	Interrupted     = "Program terminated by user"
	UnexpectedError = "Unexpected error: %v"
	Scheduled       = "Shutdown scheduled in %d minutes"
	RecentTitle     = "Recent durations"
	NoRecent        = "No recent durations"
	ConfigFile      = "Config file:"
)

var spanish = map[string]string{
	AppTitle:        "PowerTimer",
	WindowTitle:     "PowerTimer - Temporizador de Apagado",
	TimeRemaining:   "TIEMPO RESTANTE",
	UnitsHMS:        "horas  minutos  segundos",
	UnitsMS:         "minutos  segundos",
	PressToCancel:   "Presiona 'C' para cancelar",
	Cancelled:       "Apagado cancelado",
	NoticeTitle:     "AVISO",
	ErrorTitle:      "ERROR",
	GoodbyeTitle:    "DESPEDIDA",
	Goodbye:         "¡Hasta pronto!",
	InvalidOption:   "Opción inválida",
	OptionMinutes:   "%d minutos",
	OptionOneHour:   "1 hora",
	OptionTwoHours:  "2 horas",
	OptionCustom:    "Personalizado",
	OptionRepeat:    "Repetir último (%d min)",
	OptionExit:      "Salir",
	MenuFooter:      "Selecciona una opción con el número",
	RecentFooter:    "Recientes: %s",
	PromptOption:    "Opción: ",
	PromptMinutes:   "Tiempo en minutos: ",
	ErrorLine:       "Error: %s",
	NotPositive:     "Debe ser mayor a 0",
	TooLong:         "Debe ser como máximo %d minutos",
	NotANumber:      "%q no es un número entero de minutos",
	ShuttingDown:    "Apagando el sistema",
	ShutdownFailed:  "Falló el apagado: %v",
	Interrupted:     "Programa terminado por el usuario",
	UnexpectedError: "Error inesperado: %v",
	Scheduled:       "Apagado programado en %d minutos",
	RecentTitle:     "Duraciones recientes",
	NoRecent:        "Sin duraciones recientes",
	ConfigFile:      "Archivo de configuración:",
}

func init() {
	for key, msg := range spanish {
		message.SetString(language.Spanish, key, msg)
	}
}
