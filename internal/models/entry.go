package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Morning katha attendance modes
const (
	KathaNo      = "no"
	KathaYoutube = "youtube"
	KathaZoom    = "zoom"
)

// Entry is one accountability record per (user, calendar date).
// Clock and duration fields are HH:MM strings as submitted by the form;
// nil means the field was left blank for that day.
type Entry struct {
	ID             int64
	UserID         int64   `validate:"required,min=1"`
	EntryDate      string  `validate:"required,datetime=2006-01-02"`
	WakeupTime     *string `validate:"omitempty,clocktime"`
	MangalaAarti   bool
	MorningKatha   string  `validate:"required,oneof=no youtube zoom"`
	MorningPuja    *string `validate:"omitempty,clocktime"`
	MeditationMins *int    `validate:"omitempty,min=0,max=60"`
	Vachanamrut    bool
	MastMeditation bool
	Cheshta        bool
	MansiPujaCount int     `validate:"min=0,max=5"`
	ReadingTime    *string `validate:"omitempty,clocktime"`
	WastedTime     *string `validate:"omitempty,clocktime"`
	MantraJap      int     `validate:"min=0"`
	Notes          string  `validate:"max=500"`
	FilledByUserID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// clocktime accepts HH:MM with an optional seconds part, e.g. "06:30" or "06:30:00"
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9])?$`)

// Validate checks entry field constraints
func (e *Entry) Validate() error {
	validate := validator.New()
	_ = validate.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	return validate.Struct(e)
}
