package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Game lifecycle states. completed and cancelled are terminal.
const (
	GameUpcoming   = "upcoming"
	GameFull       = "full"
	GameInProgress = "in_progress"
	GameCompleted  = "completed"
	GameCancelled  = "cancelled"
)

const (
	GameTypePublic     = "public"
	GameTypePrivate    = "private"
	GameTypeTournament = "tournament"

	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
	SkillAny          = "any"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

const (
	TxCredit = "credit"
	TxDebit  = "debit"

	TxPending = "pending"
	TxSuccess = "success"
	TxFailed  = "failed"
)

const (
	AddressHome   = "home"
	AddressOffice = "office"
)

const (
	AuthEmail  = "email"
	AuthPhone  = "phone"
	AuthGoogle = "google"
)

// StringList encodes a string slice as a JSON column value. nil encodes as [].
func StringList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

// Strings decodes a JSON column written by StringList. Malformed or empty
// values decode to an empty slice.
func Strings(j datatypes.JSON) []string {
	var out []string
	if len(j) == 0 || json.Unmarshal(j, &out) != nil || out == nil {
		return []string{}
	}
	return out
}

func newID() string {
	return uuid.NewString()
}
